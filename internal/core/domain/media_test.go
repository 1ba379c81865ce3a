package domain

import "testing"

func TestParseMediaRef(t *testing.T) {
	tests := []struct {
		in   string
		want MediaRef
	}{
		{in: "", want: MediaRef{}},
		{in: "https://cdn.test/cover.png", want: RemoteURL("https://cdn.test/cover.png")},
		{in: "http://cdn.test/a.mp3", want: RemoteURL("http://cdn.test/a.mp3")},
		{in: "local:abc123", want: LocalHandle("abc123")},
		{in: "blob:xyz", want: LocalHandle("xyz")},
		{in: "demo.mp3", want: LocalHandle("demo.mp3")},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := ParseMediaRef(tc.in); got != tc.want {
				t.Errorf("ParseMediaRef(%q) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestMediaRef_Resolve(t *testing.T) {
	tests := []struct {
		name string
		ref  MediaRef
		want string
	}{
		{name: "placeholder", ref: Placeholder("Night Drive"), want: "https://picsum.photos/seed/Night%20Drive/100/100"},
		{name: "remote", ref: RemoteURL("https://cdn.test/x.png"), want: "https://cdn.test/x.png"},
		{name: "local", ref: LocalHandle("tok"), want: "local:tok"},
		{name: "zero", ref: MediaRef{}, want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.ref.Resolve(100, 100); got != tc.want {
				t.Errorf("Resolve() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseMediaRef_BlobResolvesAsLocal(t *testing.T) {
	if got := ParseMediaRef("blob:x").Resolve(600, 600); got != "local:x" {
		t.Fatalf("Resolve = %q, want local:x", got)
	}
}
