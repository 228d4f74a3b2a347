package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHistory(t *testing.T) {
	turns := ParseHistory(`[{"aiResponse":"first","language":"en"},{"aiResponse":"second","language":"hi"}]`)
	assert.Len(t, turns, 2)
	assert.Equal(t, "second", turns[1].AIResponse)
}

func TestParseHistory_LenientOnBadInput(t *testing.T) {
	assert.Empty(t, ParseHistory(""))
	assert.Empty(t, ParseHistory("not json"))
	assert.Empty(t, ParseHistory(`{"aiResponse":"object not array"}`))
}

func TestLastReply(t *testing.T) {
	req := &ProcessRequest{}
	assert.Empty(t, req.LastReply())

	req.History = []Turn{{AIResponse: "a"}, {AIResponse: "b"}}
	assert.Equal(t, "b", req.LastReply())
}
