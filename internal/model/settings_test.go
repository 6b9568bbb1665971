package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChannelListMarshalsCommaJoined(t *testing.T) {
	data, err := json.Marshal(ChannelList{"email", "sms", "push"})
	require.NoError(t, err)
	require.Equal(t, `"email,sms,push"`, string(data))
}

func TestChannelListUnmarshalsString(t *testing.T) {
	var c ChannelList
	require.NoError(t, json.Unmarshal([]byte(`"email, sms ,push"`), &c))
	require.Equal(t, ChannelList{"email", "sms", "push"}, c)
}

func TestChannelListUnmarshalsArray(t *testing.T) {
	var c ChannelList
	require.NoError(t, json.Unmarshal([]byte(`["email","push"]`), &c))
	require.Equal(t, ChannelList{"email", "push"}, c)
}

func TestChannelListEmptyString(t *testing.T) {
	var c ChannelList
	require.NoError(t, json.Unmarshal([]byte(`""`), &c))
	require.Empty(t, c)
}

func TestChannelListRejectsOtherTypes(t *testing.T) {
	var c ChannelList
	require.Error(t, json.Unmarshal([]byte(`42`), &c))
}

func TestSettingsWireForm(t *testing.T) {
	s := NotificationSettings{
		EmailEnabled: true,
		Frequency:    FrequencyDaily,
		Channels:     ChannelList{"email", "push"},
	}

	data, err := json.Marshal(s)
	require.NoError(t, err)

	// Channels travel as a comma-joined string inside the record.
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Equal(t, "email,push", raw["channels"])

	var back NotificationSettings
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, s.Channels, back.Channels)
	require.Equal(t, FrequencyDaily, back.Frequency)
}
