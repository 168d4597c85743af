package cloudinary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigner_SignUpload(t *testing.T) {
	t.Parallel()

	signer := NewSigner(Config{
		CloudName: "demo",
		APIKey:    "key-123",
		APISecret: "test-secret",
	})
	signer.now = func() time.Time { return time.Unix(1712345678, 0) }

	sig, err := signer.SignUpload()
	require.NoError(t, err)

	// sha1("folder=codevimarsh&timestamp=1712345678" + "test-secret")
	assert.Equal(t, "69d447719368fc7aa8619ffa8cdd7d15b1875477", sig.Signature)
	assert.Equal(t, int64(1712345678), sig.Timestamp)
	assert.Equal(t, "key-123", sig.APIKey)
	assert.Equal(t, "demo", sig.CloudName)
	assert.Equal(t, UploadFolder, sig.Folder)
}

func TestSigner_SortsParameters(t *testing.T) {
	t.Parallel()

	signer := NewSigner(Config{CloudName: "demo", APIKey: "k", APISecret: "abcd"})

	// sha1("folder=samples&timestamp=1315060510" + "abcd"), Cloudinary's own
	// documented example pair.
	got := signer.sign(map[string]string{
		"timestamp": "1315060510",
		"folder":    "samples",
	})
	assert.Equal(t, "242e442583afb76c501bfec40334b44eff6e2be3", got)
}

func TestSigner_NotConfigured(t *testing.T) {
	t.Parallel()

	signer := NewSigner(Config{CloudName: "demo"})
	_, err := signer.SignUpload()
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestConfig_Load(t *testing.T) {
	t.Setenv(EnvKeyCloudName, "demo")
	t.Setenv(EnvKeyAPIKey, "key")
	t.Setenv(EnvKeyAPISecret, "secret")

	cfg := LoadConfig()
	assert.True(t, cfg.Configured())

	t.Setenv(EnvKeyAPISecret, "")
	assert.False(t, LoadConfig().Configured())
}
