package usecase

import "github.com/jhoicas/Contenidos-api/internal/application/dto"

// paginate recorta items a la ventana [Offset, Offset+Limit). page debe venir normalizada.
func paginate[T any](items []T, page dto.PageRequest) []T {
	if page.Offset >= len(items) {
		return nil
	}
	end := page.Offset + page.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[page.Offset:end]
}
