package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_SaltedOutputsDiffer(t *testing.T) {
	first, err := HashPassword("pw123")
	require.NoError(t, err)
	second, err := HashPassword("pw123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, VerifyPassword("pw123", first))
	assert.True(t, VerifyPassword("pw123", second))
}

func TestVerifyPassword(t *testing.T) {
	encoded, err := HashPassword("correct horse")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{name: "correct password", password: "correct horse", want: true},
		{name: "wrong password", password: "battery staple", want: false},
		{name: "empty password", password: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyPassword(tt.password, encoded))
		})
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{name: "empty", encoded: ""},
		{name: "not a hash", encoded: "plaintext"},
		{name: "missing sections", encoded: "$argon2id$v=19$m=65536,t=1,p=4$onlysalt"},
		{name: "wrong algorithm", encoded: "$argon2i$v=19$m=65536,t=1,p=4$c2FsdHNhbHQ$aGFzaGhhc2g"},
		{name: "wrong version", encoded: "$argon2id$v=18$m=65536,t=1,p=4$c2FsdHNhbHQ$aGFzaGhhc2g"},
		{name: "bad salt encoding", encoded: "$argon2id$v=19$m=65536,t=1,p=4$!!!!$aGFzaGhhc2g"},
		{name: "bad hash encoding", encoded: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdHNhbHQ$!!!!"},
		{name: "unparsable params", encoded: "$argon2id$v=19$bogus$c2FsdHNhbHQ$aGFzaGhhc2g"},
		{name: "zero time cost", encoded: "$argon2id$v=19$m=65536,t=0,p=4$c2FsdHNhbHQ$aGFzaGhhc2g"},
		{name: "zero parallelism", encoded: "$argon2id$v=19$m=65536,t=1,p=0$c2FsdHNhbHQ$aGFzaGhhc2g"},
		{name: "memory below floor", encoded: "$argon2id$v=19$m=16,t=1,p=4$c2FsdHNhbHQ$aGFzaGhhc2g"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, VerifyPassword("pw123", tt.encoded))
		})
	}
}

func TestHashPassword_EncodedFormat(t *testing.T) {
	encoded, err := HashPassword("pw123")
	require.NoError(t, err)

	assert.Regexp(t, `^\$argon2id\$v=19\$m=65536,t=1,p=4\$[A-Za-z0-9+/]+\$[A-Za-z0-9+/]+$`, encoded)
	assert.NotContains(t, encoded, "pw123")
}
