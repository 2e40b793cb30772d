package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoute(t *testing.T) {
	tests := []struct {
		q    string
		want Kind
	}{
		{"what is stuck?", KindBottleneck},
		{"anything blocked on TUSD?", KindBottleneck},
		{"what communications are stuck", KindBottleneck},
		{"who is responsible for Lakeside?", KindResponsibility},
		{"what's the owner of this deal", KindResponsibility},
		{"who should respond to the latest emails", KindResponsibility},
		{"do you see any communication related to tusd", KindCommunication},
		{"show me recent email with the district", KindCommunication},
		{"any message from jane?", KindCommunication},
		{"status update", KindStatus},
		{"how is progress going", KindStatus},
		{"tell me about the weather", KindGeneral},
		{"tell me something interesting", KindGeneral},
		{"", KindGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.q, func(t *testing.T) {
			assert.Equal(t, tt.want, Route(tt.q))
		})
	}
}

func TestRoute_BottleneckBeatsResponsibility(t *testing.T) {
	// "waiting"/"hung" outrank "who": stuck-ness is the more specific ask.
	assert.Equal(t, KindBottleneck, Route("who are we waiting on?"))
	assert.Equal(t, KindBottleneck, Route("who is the communication hung on"))
}
