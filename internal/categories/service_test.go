package categories

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Laptops", "laptops"},
		{"Home & Kitchen", "home-kitchen"},
		{"  TVs / Audio  ", "tvs-audio"},
		{"Déjà", "d-j"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
