package editor

import "residence/server/internal/models"

func promoID(p models.PromoOffer) string { return p.ID }

type PromoEditor struct {
	e *ProjectEditor
}

func (pe *PromoEditor) List() []models.PromoOffer {
	return models.Clone(pe.e.draft.Promos)
}

func (pe *PromoEditor) Add(promo models.PromoOffer) string {
	if promo.ID == "" {
		promo.ID = models.NewID()
	}
	pe.e.draft.Promos = append(pe.e.draft.Promos, promo)
	pe.e.dirty = true
	return promo.ID
}

func (pe *PromoEditor) Update(promo models.PromoOffer) error {
	if err := replaceItem(pe.e.draft.Promos, promo.ID, promoID, promo); err != nil {
		return err
	}
	pe.e.dirty = true
	return nil
}

func (pe *PromoEditor) Remove(id string) error {
	promos, err := removeItem(pe.e.draft.Promos, id, promoID)
	if err != nil {
		return err
	}
	pe.e.draft.Promos = promos
	pe.e.dirty = true
	return nil
}
