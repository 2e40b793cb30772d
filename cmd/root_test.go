package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	cmd := newVersionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "hawk version")
}

func TestAnalyzeCmd_NoProjects(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cmd := newAnalyzeCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no projects found")
}

func TestChatCmd_Quit(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cmd := newChatCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader("quit\n"))

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Goodbye.")
}
