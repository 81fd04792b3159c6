package storage

import (
	"errors"
	"net/url"
	"strings"
	"testing"
)

func TestLogoObjectKey(t *testing.T) {
	tests := []struct {
		contentType string
		wantExt     string
		wantErr     error
	}{
		{"image/png", ".png", nil},
		{"image/jpeg; charset=binary", ".jpg", nil},
		{"IMAGE/WEBP", ".webp", nil},
		{"application/pdf", "", ErrUnsupportedContentType},
		{"", "", ErrUnsupportedContentType},
	}
	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			key, err := LogoObjectKey("teams", "t1", tt.contentType)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got err %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if !strings.HasPrefix(key, "logos/teams/t1/") || !strings.HasSuffix(key, tt.wantExt) {
				t.Errorf("unexpected key %q", key)
			}
		})
	}

	a, _ := LogoObjectKey("teams", "t1", "image/png")
	b, _ := LogoObjectKey("teams", "t1", "image/png")
	if a == b {
		t.Errorf("keys must be unique per upload, got %q twice", a)
	}
}

func TestPublicURL(t *testing.T) {
	base, _ := url.Parse("https://cdn.example.com/bucket/")
	tests := []struct {
		key  string
		want string
	}{
		{"logos/teams/t1/a.png", "https://cdn.example.com/bucket/logos/teams/t1/a.png"},
		{"/logos/x.png", "https://cdn.example.com/bucket/logos/x.png"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := PublicURL(base, tt.key, nil); got != tt.want {
			t.Errorf("PublicURL(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
	if got := PublicURL(nil, "a.png", nil); got != "" {
		t.Errorf("nil base: got %q", got)
	}
}

func TestR2ConfigCompleteness(t *testing.T) {
	full := CloudflareR2UploaderConfig{"acc", "key", "secret", "bucket", "https://cdn.example.com"}
	if !full.IsComplete() || full.IsEmpty() {
		t.Errorf("full config misreported")
	}
	var empty CloudflareR2UploaderConfig
	if empty.IsComplete() || !empty.IsEmpty() {
		t.Errorf("empty config misreported")
	}
	partial := CloudflareR2UploaderConfig{BucketName: "bucket"}
	if partial.IsComplete() || partial.IsEmpty() {
		t.Errorf("partial config misreported")
	}
}
