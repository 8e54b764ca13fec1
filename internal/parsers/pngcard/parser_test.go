package pngcard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/domain"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/ports/driven"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/pngmeta/pngtest"
)

func parse(t *testing.T, data []byte) (*driven.ParseResult, error) {
	t.Helper()
	return New().Parse(context.Background(), &domain.RawCard{Filename: "card.png", Content: data})
}

func TestParser_Metadata(t *testing.T) {
	p := New()
	assert.Equal(t, "png", p.Name())
	assert.Equal(t, []string{".png"}, p.SupportedExtensions())
	assert.Equal(t, 50, p.Priority())
}

func TestParser_Parse_V3(t *testing.T) {
	const card = `{"spec":"chara_card_v3","spec_version":"2.0","data":{"name":"Aria","description":"A cat girl."}}`

	res, err := parse(t, pngtest.CardPNG(card))
	require.NoError(t, err)

	assert.Equal(t, "png", res.Parser)
	assert.Equal(t, "Aria", res.Profile.Name)
	assert.Equal(t, "A cat girl.", res.Profile.Persona)
	assert.Equal(t, "{{user}}", res.Profile.UserNickname)
	assert.Equal(t, domain.SourceFormatTavernV3, res.Profile.SourceFormat)
	assert.Empty(t, res.Warnings)
}

func TestParser_Parse_SkipsMalformedText(t *testing.T) {
	data := pngtest.New().
		IHDR().
		Chunk("tEXt", []byte("no separator here")).
		Card(`{"name":"Aria"}`).
		IEND().
		Bytes()

	res, err := parse(t, data)
	require.NoError(t, err)
	assert.Equal(t, "Aria", res.Profile.Name)
}

func TestParser_Parse_ITXtUTF8(t *testing.T) {
	data := pngtest.New().
		IHDR().
		IText("chara", `{"name":"こんにちは"}`).
		IEND().
		Bytes()

	res, err := parse(t, data)
	require.NoError(t, err)
	assert.Equal(t, "こんにちは", res.Profile.Name)
}

func TestParser_Parse_CompressedWarning(t *testing.T) {
	data := pngtest.New().
		IHDR().
		ITextFlag("chara", `{"name":"Squashed"}`, 1).
		IEND().
		Bytes()

	res, err := parse(t, data)
	require.NoError(t, err)
	assert.Equal(t, "Squashed", res.Profile.Name)

	codes := make([]domain.WarningCode, 0, len(res.Warnings))
	for _, w := range res.Warnings {
		codes = append(codes, w.Code)
	}
	assert.Contains(t, codes, domain.WarnCompressedText)
}

func TestParser_Parse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, domain.ErrNotPNG},
		{"short signature", []byte("\x89PNG"), domain.ErrNotPNG},
		{"no chara", pngtest.New().IHDR().IEND().Bytes(), domain.ErrNoEmbeddedData},
		{"chara after IEND", pngtest.New().IEND().Card(`{"name":"late"}`).Bytes(), domain.ErrNoEmbeddedData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.data)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
