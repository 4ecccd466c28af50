package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/RomRom16/dossierfortil/internal/ai"
	"github.com/RomRom16/dossierfortil/internal/cv"
)

// Structurer turns extracted resume text into a structured record.
type Structurer interface {
	Structure(ctx context.Context, text string) (ai.Record, error)
}

type CVParseUsecase struct {
	parser Structurer
}

func NewCVParseUsecase(parser Structurer) *CVParseUsecase {
	return &CVParseUsecase{parser: parser}
}

// ParseText structures resume text already extracted by the client.
func (uc *CVParseUsecase) ParseText(ctx context.Context, text string) (ai.Record, error) {
	if strings.TrimSpace(text) == "" {
		return ai.Record{}, fmt.Errorf("%w: text is required", ErrValidation)
	}
	return uc.parser.Structure(ctx, text)
}

// ParseUpload extracts text from an uploaded document and structures it.
func (uc *CVParseUsecase) ParseUpload(ctx context.Context, filename string, data []byte) (ai.Record, error) {
	if len(data) == 0 {
		return ai.Record{}, fmt.Errorf("%w: file is empty", ErrValidation)
	}

	text, err := cv.ExtractText(filename, data)
	if err != nil {
		return ai.Record{}, err
	}
	return uc.parser.Structure(ctx, text)
}
