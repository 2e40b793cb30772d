package thread

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	internal := []string{"company.com"}

	tests := []struct {
		name     string
		sender   string
		expected Party
	}{
		{
			name:     "external domain",
			sender:   "jane@tusd.edu",
			expected: PartyExternal,
		},
		{
			name:     "internal domain",
			sender:   "bob@company.com",
			expected: PartyInternal,
		},
		{
			name:     "internal domain case insensitive",
			sender:   "bob@Company.COM",
			expected: PartyInternal,
		},
		{
			name:     "no at sign",
			sender:   "mailer-daemon",
			expected: PartyUnknown,
		},
		{
			name:     "display name form",
			sender:   "Jane Doe <jane@tusd.edu>",
			expected: PartyExternal,
		},
		{
			name:     "empty sender",
			sender:   "",
			expected: PartyUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(Message{Sender: tt.sender}, internal)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParty_Counterpart(t *testing.T) {
	assert.Equal(t, PartyExternal, PartyInternal.Counterpart())
	assert.Equal(t, PartyInternal, PartyExternal.Counterpart())
	assert.Equal(t, PartyUnknown, PartyUnknown.Counterpart())
}

func TestClassify_ExternalSenderMeansInternalOwesReply(t *testing.T) {
	// An external most-recent sender means the internal team owes the
	// next response.
	sender := Classify(Message{Sender: "jane@tusd.edu"}, []string{"company.com"})
	assert.Equal(t, PartyExternal, sender)
	assert.Equal(t, PartyInternal, sender.Counterpart())
}
