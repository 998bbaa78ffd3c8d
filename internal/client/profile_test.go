package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/qiwi-client/pkg/qiwi"
)

const profileResponse = `{
	"authInfo": {
		"personId": 79991234567,
		"boundEmail": "owner@example.com",
		"ip": "10.0.0.1",
		"lastLoginDate": "2024-03-01T10:00:00+03:00",
		"registrationDate": "2019-01-15T09:30:00+03:00"
	},
	"contractInfo": {
		"blocked": false,
		"contractId": 79991234567,
		"creationDate": "2019-01-15T09:30:00+03:00",
		"identificationInfo": [{"bankAlias": "QIWI", "identificationLevel": "FULL"}]
	},
	"userInfo": {
		"defaultPayCurrency": 643,
		"email": null,
		"firstTxnId": 1000,
		"language": "ru",
		"operator": "Beeline"
	}
}`

func TestProfileClient_ProfileInfo(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/person-profile/v1/profile/current", r.URL.Path)
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "true", r.URL.Query().Get("authInfoEnabled"))
		assert.Equal(t, "true", r.URL.Query().Get("contractInfoEnabled"))
		assert.Equal(t, "true", r.URL.Query().Get("userInfoEnabled"))
		assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(profileResponse))
	}))
	defer server.Close()

	cli, err := New(context.Background(), &qiwi.Config{
		APIEndpoint: server.URL,
		Phone:       testPhone,
		Token:       testToken,
	})
	require.NoError(t, err)

	profile, err := cli.ProfileInfo(context.Background())
	require.NoError(t, err)
	require.NotNil(t, profile.AuthInfo)
	assert.Equal(t, uint64(79991234567), profile.AuthInfo.PersonID)
	require.NotNil(t, profile.AuthInfo.BoundEmail)
	assert.Equal(t, "owner@example.com", *profile.AuthInfo.BoundEmail)
	require.NotNil(t, profile.ContractInfo)
	require.Len(t, profile.ContractInfo.IdentificationInfo, 1)
	assert.Equal(t, "FULL", profile.ContractInfo.IdentificationInfo[0].IdentificationLevel)
	require.NotNil(t, profile.UserInfo)
	assert.Equal(t, qiwi.CurrencyRUB, profile.UserInfo.DefaultPayCurrency)
	assert.Nil(t, profile.UserInfo.Email)
}

func TestProfileClient_ProfileInfo_ErrorCode(t *testing.T) {
	t.Parallel()

	transport := newFakeTransport(ok(`{"errorCode":"auth.token.expired"}`))
	profiles := NewProfileClient(NewCaller(transport))

	profile, err := profiles.ProfileInfo(context.Background())
	assert.Nil(t, profile)

	code, isQiwi := qiwi.IsQiwiError(err)
	assert.True(t, isQiwi)
	assert.Equal(t, "auth.token.expired", code)
	assert.Contains(t, err.Error(), "getting profile")
}
