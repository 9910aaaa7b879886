package webinarController

import (
	"testing"

	"saathi/config"

	"github.com/stretchr/testify/require"
)

func TestBuildRTCTokenSkipsWithoutCredentials(t *testing.T) {
	config.AppConfig = &config.Config{}

	token, err := buildRTCToken("webinar-local", 1, true)
	require.NoError(t, err)
	require.Empty(t, token)
}

func TestBuildRTCTokenMintsForConfiguredApp(t *testing.T) {
	config.AppConfig = &config.Config{
		AgoraAppID:       "970CA35de60c44645bbae8a215061b33",
		AgoraCertificate: "5CFd2fd1755d40ecb72977518be15d3b",
	}

	publisherToken, err := buildRTCToken("webinar-town-hall", 42, true)
	require.NoError(t, err)
	require.NotEmpty(t, publisherToken)

	subscriberToken, err := buildRTCToken("webinar-town-hall", 42, false)
	require.NoError(t, err)
	require.NotEmpty(t, subscriberToken)
}
