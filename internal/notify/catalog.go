package notify

import "github.com/ChristelOko/BarometreHED-sub002/internal/domain"

type message struct {
	Title string
	Body  string
}

type messageSet struct {
	Morning message
	Evening message
}

// catalog holds the personalized reminder texts per Human Design profile
// type. Content mirrors the product copy, not placeholders.
var catalog = map[string]messageSet{
	domain.ProfileGenerator: {
		Morning: message{
			Title: "🌱 Bonjour Générateur !",
			Body:  "Comment répond ton énergie sacrale ce matin ? Prends un instant pour ton baromètre.",
		},
		Evening: message{
			Title: "🌙 Bilan du soir",
			Body:  "As-tu dépensé ton énergie sur ce qui t'allume vraiment aujourd'hui ?",
		},
	},
	domain.ProfileManifestor: {
		Morning: message{
			Title: "⚡ Bonjour Manifesteur !",
			Body:  "Quelle impulsion veut s'exprimer aujourd'hui ? Mesure ton élan avec ton baromètre.",
		},
		Evening: message{
			Title: "🌙 Moment de repos",
			Body:  "Ton énergie d'initiative mérite une pause. Où en es-tu ce soir ?",
		},
	},
	domain.ProfileManifestingGenerator: {
		Morning: message{
			Title: "🔥 Bonjour Générateur Manifesteur !",
			Body:  "Plusieurs feux allumés ce matin ? Vérifie lesquels répondent vraiment.",
		},
		Evening: message{
			Title: "🌙 Ralentis un instant",
			Body:  "Entre toutes tes pistes du jour, laquelle t'a nourri ? Note-le dans ton baromètre.",
		},
	},
	domain.ProfileProjector: {
		Morning: message{
			Title: "🦉 Bonjour Projecteur !",
			Body:  "As-tu été invité·e à partager ta vision ? Observe ton niveau d'énergie avant de t'engager.",
		},
		Evening: message{
			Title: "🌙 Temps de recharge",
			Body:  "Ton énergie n'est pas illimitée. Fais le point avant la nuit.",
		},
	},
	domain.ProfileReflector: {
		Morning: message{
			Title: "🌕 Bonjour Reflecteur !",
			Body:  "Quelle ambiance reflètes-tu ce matin ? Ton baromètre t'aide à t'y retrouver.",
		},
		Evening: message{
			Title: "🌙 Sous la lune",
			Body:  "Qu'as-tu absorbé de ton entourage aujourd'hui ? Dépose-le dans ton baromètre.",
		},
	},
}

var fallbackMessages = messageSet{
	Morning: message{
		Title: "☀️ Bonjour !",
		Body:  "Prends un instant pour mesurer ton énergie du jour.",
	},
	Evening: message{
		Title: "🌙 Bonsoir !",
		Body:  "Un dernier regard sur ton énergie avant la nuit ?",
	},
}

// messagesFor returns the set for the declared profile type, falling back to
// the generic copy when the tag is unrecognized.
func messagesFor(profileType string) messageSet {
	if set, ok := catalog[profileType]; ok {
		return set
	}
	return fallbackMessages
}
