// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import "github.com/danielhkuo/medal-awards/models"

// Default returns the built-in Solo Ommini Awards 2025 roster.
// Candidates are sorted alphabetically by surname.
func Default() *Roster {
	return &Roster{
		Codes: []string{
			"1111", "1112", "1113",
			"2222", "2223", "2224",
			"3333", "3334", "3335", "3336",
		},
		AdminCode: "5555",
		Candidates: []models.Candidate{
			{ID: "1", Name: "Francesco Campi"},
			{ID: "2", Name: "Simone Campo"},
			{ID: "3", Name: "Lorenzo Cavallo"},
			{ID: "4", Name: "Giacomo Fabretti"},
			{ID: "5", Name: "Alex Frigerio"},
			{ID: "6", Name: "Giulio Massara"},
			{ID: "7", Name: "Alessandro Niutta"},
			{ID: "8", Name: "Giovanni Pernazza"},
			{ID: "9", Name: "Edoardo Sensi"},
			{ID: "10", Name: "Tommaso Terzaghi"},
		},
		Categories: []models.AwardCategory{
			{
				ID:              "cagnolino",
				Title:           "Cagnolino dell’anno",
				Icon:            "🐶",
				Description:     "Il più devoto, fedele e sottomesso.",
				LongDescription: "Per il più devoto, fedele e sottomesso tra gli ommini. Il vero esempio di amore… e dipendenza.",
			},
			{
				ID:              "bollito",
				Title:           "Bollito dell’anno",
				Icon:            "🍲",
				Description:     "Tenero, molle e privo di vapore.",
				LongDescription: "Per colui che ha passato troppo tempo in pentola, ormai tenero, molle, e totalmente privo di vapore.",
			},
			{
				ID:              "bruciato",
				Title:           "Bruciato dell’anno",
				Icon:            "🔥",
				Description:     "La mina vagante ingestibile.",
				LongDescription: "La mina vagante del gruppo: imprevedibile, ingestibile, e probabilmente pericoloso per sé e per gli altri.",
			},
			{
				ID:              "scomparso",
				Title:           "Scomparso dell’anno",
				Icon:            "🕵️",
				Description:     "Il fantasma che visualizza alle 23:47.",
				LongDescription: "Il fantasma del gruppo. Nessuno lo vede mai, ma ogni tanto lascia un “visualizzato alle 23:47”.",
			},
			{
				ID:              "ommino",
				Title:           "Solo Ommino dell’anno",
				Icon:            "🏆",
				Description:     "L’onore supremo. Gloria eterna.",
				LongDescription: "L’onore supremo. Il titolo riservato a chi ha portato alto il nome del gruppo, con performance leggendarie, dedizione assoluta e contributi indelebili alla storia Solo Ommini.",
			},
		},
	}
}
