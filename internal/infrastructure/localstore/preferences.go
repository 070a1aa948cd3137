package localstore

import (
	"context"

	"github.com/mealops/kitchen-system/internal/infrastructure/storage"
)

const languageKey = "i18n.language"

// DefaultLanguage is returned when no language preference was ever saved.
const DefaultLanguage = "en"

// Preferences exposes small per-device settings kept in the key-value store.
type Preferences struct {
	kv storage.Store
}

func NewPreferences(kv storage.Store) *Preferences {
	return &Preferences{kv: kv}
}

// Language returns the stored UI language, or DefaultLanguage when unset.
func (p *Preferences) Language(ctx context.Context) (string, error) {
	lang := DefaultLanguage
	if _, err := p.kv.Load(ctx, languageKey, &lang); err != nil {
		return DefaultLanguage, err
	}
	if lang == "" {
		return DefaultLanguage, nil
	}
	return lang, nil
}

func (p *Preferences) SetLanguage(ctx context.Context, lang string) error {
	return p.kv.Save(ctx, languageKey, lang)
}
