package categorytree

import (
	"crypto/sha512"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/jhoicas/Contenidos-api/internal/domain/entity"
)

// Fingerprint huella del bosque completo: SHA-384 (hex) de una cadena canónica en preorden.
// Dos bosques con la misma estructura y los mismos campos dan la misma huella.
// Se usa como versión (ETag) para detectar escrituras concurrentes.
func Fingerprint(forest entity.Forest) string {
	var b strings.Builder
	writeCanonical(&b, forest)
	hash := sha512.Sum384([]byte(b.String()))
	return hex.EncodeToString(hash[:])
}

// Cada campo va con su longitud delante para que no haya ambigüedad al concatenar.
func writeCanonical(b *strings.Builder, nodes []entity.CategoryNode) {
	b.WriteString("[" + strconv.Itoa(len(nodes)))
	for _, n := range nodes {
		field(b, n.ID)
		field(b, n.Title)
		field(b, n.Image)
		b.WriteString("p" + strconv.Itoa(len(n.AssignedProducts)))
		for _, p := range n.AssignedProducts {
			field(b, p)
		}
		field(b, n.UpdatedAt.Text())
		writeCanonical(b, n.Subcategories)
	}
	b.WriteString("]")
}

func field(b *strings.Builder, s string) {
	b.WriteString(strconv.Itoa(len(s)))
	b.WriteByte(':')
	b.WriteString(s)
}
