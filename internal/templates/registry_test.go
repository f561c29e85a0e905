package templates

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"prompt_generator_server/internal/types"
)

func TestFieldsFor_NonEmptyAndUnique(t *testing.T) {
	r := NewRegistry()
	for _, c := range types.Categories() {
		fields := r.FieldsFor(c)
		require.NotEmpty(t, fields, "category %s has no fields", c)

		seen := make(map[string]bool, len(fields))
		for _, f := range fields {
			require.NotEmpty(t, f.ID)
			require.False(t, seen[f.ID], "duplicate field %q in %s", f.ID, c)
			seen[f.ID] = true
		}
	}
}

func TestFieldsFor_UnknownCategory(t *testing.T) {
	require.Nil(t, NewRegistry().FieldsFor(types.Category("PODCAST")))
	require.Equal(t, "", NewRegistry().Render(types.Category("PODCAST"), nil))
}

func TestFieldsFor_ReturnsCopy(t *testing.T) {
	r := NewRegistry()
	fields := r.FieldsFor(types.CategoryText)
	fields[0].ID = "mutated"
	require.Equal(t, "tema", r.FieldsFor(types.CategoryText)[0].ID)
}

func TestRender_TextScenario(t *testing.T) {
	got := NewRegistry().Render(types.CategoryText, types.FormValues{
		"tema":      "IA",
		"estilo":    "formal",
		"objetivo":  "explicar",
		"audiencia": "estudiantes",
	})
	require.Equal(t,
		`Escribe un texto sobre "IA" con un estilo formal. El objetivo es explicar para una audiencia de estudiantes.`,
		got)
}

func TestRender_CodeFrameworkOptional(t *testing.T) {
	r := NewRegistry()

	with := r.Render(types.CategoryCode, types.FormValues{
		"lenguaje":      "Go",
		"funcionalidad": "un servidor HTTP",
		"framework":     "gin",
	})
	require.Equal(t, "Escribe código en Go usando gin para implementar la siguiente funcionalidad: un servidor HTTP. Añade comentarios explicando las partes clave.", with)

	without := r.Render(types.CategoryCode, types.FormValues{
		"lenguaje":      "Go",
		"funcionalidad": "un servidor HTTP",
	})
	require.NotContains(t, without, "usando")
}

func TestRender_MissingKeysAreEmpty(t *testing.T) {
	got := NewRegistry().Render(types.CategorySound, nil)
	require.Equal(t, "Genera un  de estilo . Descripción: .", got)
}

func TestDefaults_CoverExactlyTheFields(t *testing.T) {
	r := NewRegistry()
	for _, c := range types.Categories() {
		defaults := r.Defaults(c)
		fields := r.FieldsFor(c)
		require.Len(t, defaults, len(fields))
		for _, f := range fields {
			v, ok := defaults[f.ID]
			require.True(t, ok, "missing default for %s.%s", c, f.ID)
			require.Equal(t, f.DefaultValue, v)
		}
	}
}

func TestNormalize_DropsForeignKeys(t *testing.T) {
	got := NewRegistry().Normalize(types.CategoryImage, types.FormValues{
		"descripcion": "un gato",
		"tema":        "no pertenece",
	})
	require.Equal(t, types.FormValues{"descripcion": "un gato", "estilo": "", "colores": ""}, got)
}

func TestHasField(t *testing.T) {
	r := NewRegistry()
	require.True(t, r.HasField(types.CategoryVideo, "escena"))
	require.False(t, r.HasField(types.CategoryVideo, "tema"))
}

func TestTitle(t *testing.T) {
	r := NewRegistry()
	require.Equal(t, "IA", r.Title(types.CategoryText, types.FormValues{"tema": "IA"}))
	require.Equal(t, UntitledPrompt, r.Title(types.CategoryText, types.FormValues{"estilo": "formal"}))
	require.Equal(t, UntitledPrompt, r.Title(types.Category("PODCAST"), nil))
	require.Equal(t, "  ", r.Title(types.CategoryText, types.FormValues{"tema": "  "}))
}

// TestProperty_RenderIsPure checks that rendering is deterministic and total
// for arbitrary, possibly partial, form values.
func TestProperty_RenderIsPure(t *testing.T) {
	r := NewRegistry()
	categories := types.Categories()

	rapid.Check(t, func(t *rapid.T) {
		c := categories[rapid.IntRange(0, len(categories)-1).Draw(t, "category")]
		values := types.FormValues{}
		for _, f := range r.FieldsFor(c) {
			if rapid.Bool().Draw(t, "present-"+f.ID) {
				values[f.ID] = rapid.String().Draw(t, "value-"+f.ID)
			}
		}
		extraKey := rapid.StringMatching(`[a-z]{1,8}`).Draw(t, "extraKey")
		if !r.HasField(c, extraKey) {
			values[extraKey] = rapid.String().Draw(t, "extraValue")
		}

		first := r.Render(c, values)
		second := r.Render(c, values.Clone())
		if first != second {
			t.Fatalf("render not deterministic: %q vs %q", first, second)
		}
		if first == "" {
			t.Fatalf("render produced empty instruction for %s", c)
		}
	})
}
