package classifier

import (
	"strings"

	"github.com/google/uuid"

	"github.com/vitoramaral10/craft-guard/internal/chat"
	"github.com/vitoramaral10/craft-guard/internal/host"
)

// fingerprintSpace é o namespace dos UUIDs de identidade de item.
var fingerprintSpace = uuid.MustParse("6f1d2c8e-4b7a-4f0e-9c5d-3a2b1e0f9d87")

// Fingerprint gera a identidade de "este tipo de item": tipo + nome customizado.
// Itens com o mesmo tipo e o mesmo nome colapsam no mesmo valor, qualquer que
// seja o restante dos metadados. Não consulta o cache.
func Fingerprint(item *host.Item) uuid.UUID {
	return uuid.NewMD5(fingerprintSpace, []byte(fingerprintKey(item)))
}

func fingerprintKey(item *host.Item) string {
	if item == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(item.Type)

	if name, ok := item.DisplayName(); ok {
		sb.WriteByte(0)
		sb.WriteString(name.Legacy)
		if name.Rich != nil {
			sb.WriteByte(0)
			sb.WriteString(chat.Signature(name.Rich))
		}
	}

	return sb.String()
}
