package domain

import "testing"

func TestRenderPost(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bold", "un **mot** fort", "un <strong>mot</strong> fort"},
		{"italic", "en *douceur* ce matin", "en <em>douceur</em> ce matin"},
		{"link", "voir [mon profil](https://exemple.fr/p)", `voir <a href="https://exemple.fr/p" rel="noopener">mon profil</a>`},
		{"line break", "ligne un\nligne deux", "ligne un<br>ligne deux"},
		{"escapes html", "<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{"bold before italic", "**gras** et *italique*", "<strong>gras</strong> et <em>italique</em>"},
	}
	for _, tc := range cases {
		if got := RenderPost(tc.in); got != tc.want {
			t.Fatalf("%s: want %q, got %q", tc.name, tc.want, got)
		}
	}
}
