package filesystem

import (
	"path/filepath"
	"testing"
)

func TestNewVolumeResolver_Empty(t *testing.T) {
	vr := NewVolumeResolver(map[string]string{})
	if got := vr.Resolve("/anything"); got != "unknown" {
		t.Errorf("Resolve() = %q, want unknown", got)
	}
}

func TestVolumeResolver_Resolve(t *testing.T) {
	root := t.TempDir()
	vr := NewVolumeResolver(map[string]string{
		"gallery": root,
		"hero":    filepath.Join(root, "hero"),
	})

	tests := []struct {
		name string
		path string
		want string
	}{
		{"root itself", root, "gallery"},
		{"category file", filepath.Join(root, "moments", "a.jpg"), "gallery"},
		{"hero dir", filepath.Join(root, "hero"), "hero"},
		{"hero file", filepath.Join(root, "hero", "clip.mp4"), "hero"},
		{"hero-like sibling", filepath.Join(root, "heroes", "x.jpg"), "gallery"},
		{"outside", "/definitely/elsewhere", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := vr.Resolve(tt.path); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestVolumeResolver_Resolve_NilResolver(t *testing.T) {
	var vr *VolumeResolver
	if got := vr.Resolve("/media/x.jpg"); got != "unknown" {
		t.Errorf("Resolve() on nil = %q, want unknown", got)
	}
}

func TestRetryConfig_ResolveVolume(t *testing.T) {
	root := t.TempDir()
	prev := defaultResolver
	t.Cleanup(func() { SetDefaultVolumeResolver(prev) })

	SetDefaultVolumeResolver(NewVolumeResolver(map[string]string{"gallery": root}))

	config := RetryConfig{}
	if got := config.resolveVolume(filepath.Join(root, "a.jpg")); got != "gallery" {
		t.Errorf("default resolver: got %q, want gallery", got)
	}

	config.VolumeResolver = NewVolumeResolver(map[string]string{"hero": root})
	if got := config.resolveVolume(filepath.Join(root, "a.jpg")); got != "hero" {
		t.Errorf("config resolver: got %q, want hero", got)
	}
}
