package search

import (
	"encoding/json"
	"io"

	"github.com/mumanal/actualizacion-datos/internal/domain/entity"
)

func decodeHits(r io.Reader) ([]entity.Registration, error) {
	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string   `json:"_id"`
				Source document `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(r).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]entity.Registration, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source.Registration)
	}
	return out, nil
}
