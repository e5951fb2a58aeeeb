package usecase

import (
	"strings"

	"github.com/jhoicas/Contenidos-api/internal/domain"
	"github.com/jhoicas/Contenidos-api/internal/domain/entity"
)

// FAQOptions: orden manual por sort_order y luego por antigüedad.
func FAQOptions() ContentOptions[*entity.FAQ] {
	return ContentOptions[*entity.FAQ]{
		Less: func(a, b *entity.FAQ) bool {
			if a.SortOrder != b.SortOrder {
				return a.SortOrder < b.SortOrder
			}
			return a.CreatedAt.Before(b.CreatedAt.Time)
		},
	}
}

// SocialLinkOptions: igual que las FAQ, el panel define el orden.
func SocialLinkOptions() ContentOptions[*entity.SocialLink] {
	return ContentOptions[*entity.SocialLink]{
		Less: func(a, b *entity.SocialLink) bool {
			if a.SortOrder != b.SortOrder {
				return a.SortOrder < b.SortOrder
			}
			return a.CreatedAt.Before(b.CreatedAt.Time)
		},
	}
}

// BlogOptions: borrador por defecto.
func BlogOptions() ContentOptions[*entity.BlogPost] {
	return ContentOptions[*entity.BlogPost]{
		Defaults: func(b *entity.BlogPost) {
			if b.Status == "" {
				b.Status = "draft"
			}
		},
	}
}

// CareerOptions: vacante abierta por defecto.
func CareerOptions() ContentOptions[*entity.Career] {
	return ContentOptions[*entity.Career]{
		Defaults: func(c *entity.Career) {
			if c.Status == "" {
				c.Status = "open"
			}
		},
	}
}

// SEOOptions: ordenadas por ruta.
func SEOOptions() ContentOptions[*entity.SEOEntry] {
	return ContentOptions[*entity.SEOEntry]{
		Less: func(a, b *entity.SEOEntry) bool { return a.PagePath < b.PagePath },
	}
}

// ContactOptions: todo mensaje entra como "new", lo diga o no el formulario.
func ContactOptions() ContentOptions[*entity.Contact] {
	return ContentOptions[*entity.Contact]{
		Defaults: func(c *entity.Contact) {
			c.Status = entity.ContactStatusNew
			c.Email = strings.TrimSpace(c.Email)
		},
	}
}

// SetContactStatus cambia el estado de un mensaje de contacto.
func SetContactStatus(status string) func(*entity.Contact) error {
	return func(c *entity.Contact) error {
		switch status {
		case entity.ContactStatusNew, entity.ContactStatusRead, entity.ContactStatusArchived:
			c.Status = status
			return nil
		}
		return domain.ErrInvalidInput
	}
}
