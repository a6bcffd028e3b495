package service

import (
	"testing"

	"github.com/skycater/gsc/internal/gsc/entity"
)

func TestStandardQuantite(t *testing.T) {
	vol := &entity.Vol{EstimatedPassengers: 300}

	cases := []struct {
		name        string
		typeArticle string
		want        int
	}{
		{"Couverture polaire", entity.TypeArticleMaterielDivers, 150},
		{"Oreiller confort", entity.TypeArticleMaterielDivers, 100},
		{"Serviette rafraîchissante", entity.TypeArticleConsommable, 300},
		{"Plateau repas", entity.TypeArticleConsommable, 0},
		// Name matches but wrong category.
		{"Serviette", entity.TypeArticleMaterielDivers, 0},
	}
	for _, tc := range cases {
		article := &entity.Article{Name: tc.name, Type: tc.typeArticle}
		if got := standardQuantite(article, vol); got != tc.want {
			t.Errorf("%s (%s): expected %d, got %d", tc.name, tc.typeArticle, tc.want, got)
		}
	}
}
