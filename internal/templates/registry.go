// Package templates holds the per-category form definitions and the pure
// functions that turn filled-in forms into natural-language instructions.
package templates

import (
	"fmt"

	"prompt_generator_server/internal/types"
)

// UntitledPrompt is shown for saved entries whose first field is empty.
const UntitledPrompt = "Prompt sin título"

// TemplateFn renders form values into an instruction. It must be pure.
type TemplateFn func(values types.FormValues) string

// Entry is the static configuration of one category.
type Entry struct {
	Fields []types.FieldSpec
	Render TemplateFn
}

// Registry maps every category to its form and template.
type Registry struct {
	entries map[types.Category]Entry
}

// NewRegistry builds the registry from the built-in category table.
func NewRegistry() *Registry {
	return &Registry{entries: builtinEntries()}
}

// FieldsFor returns the ordered fields of c. Unknown categories yield nil.
func (r *Registry) FieldsFor(c types.Category) []types.FieldSpec {
	entry, ok := r.entries[c]
	if !ok {
		return nil
	}
	out := make([]types.FieldSpec, len(entry.Fields))
	copy(out, entry.Fields)
	return out
}

// Render composes the instruction for c. Missing values render as "".
func (r *Registry) Render(c types.Category, values types.FormValues) string {
	entry, ok := r.entries[c]
	if !ok {
		return ""
	}
	return entry.Render(r.Normalize(c, values))
}

// Defaults returns one value per field of c: its default or "".
func (r *Registry) Defaults(c types.Category) types.FormValues {
	return r.Normalize(c, nil)
}

// Normalize keeps exactly the field identifiers of c, filling gaps from the
// field default or with "". Keys that do not belong to c are dropped.
func (r *Registry) Normalize(c types.Category, values types.FormValues) types.FormValues {
	fields := r.entries[c].Fields
	out := make(types.FormValues, len(fields))
	for _, f := range fields {
		v, ok := values[f.ID]
		if !ok {
			v = f.DefaultValue
		}
		out[f.ID] = v
	}
	return out
}

// HasField reports whether id is one of c's fields.
func (r *Registry) HasField(c types.Category, id string) bool {
	for _, f := range r.entries[c].Fields {
		if f.ID == id {
			return true
		}
	}
	return false
}

// Title picks the display title of a saved entry: the first field's value.
func (r *Registry) Title(c types.Category, values types.FormValues) string {
	fields := r.entries[c].Fields
	if len(fields) == 0 {
		return UntitledPrompt
	}
	if title := values.Get(fields[0].ID); title != "" {
		return title
	}
	return UntitledPrompt
}

func builtinEntries() map[types.Category]Entry {
	return map[types.Category]Entry{
		types.CategoryText: {
			Fields: []types.FieldSpec{
				{ID: "tema", Label: "Tema principal", Placeholder: "Ej: El futuro de la inteligencia artificial", Kind: types.KindInput},
				{ID: "estilo", Label: "Estilo de escritura", Placeholder: "Ej: Formal, amigable, técnico, poético", Kind: types.KindInput},
				{ID: "objetivo", Label: "Objetivo del texto", Placeholder: "Ej: Explicar un concepto complejo de forma sencilla", Kind: types.KindTextarea},
				{ID: "audiencia", Label: "Audiencia objetivo", Placeholder: "Ej: Estudiantes universitarios, público general", Kind: types.KindInput},
			},
			Render: func(v types.FormValues) string {
				return fmt.Sprintf("Escribe un texto sobre \"%s\" con un estilo %s. El objetivo es %s para una audiencia de %s.",
					v.Get("tema"), v.Get("estilo"), v.Get("objetivo"), v.Get("audiencia"))
			},
		},
		types.CategoryImage: {
			Fields: []types.FieldSpec{
				{ID: "descripcion", Label: "Descripción de la imagen", Placeholder: "Ej: Un astronauta montando a caballo en Marte, estilo fotorrealista", Kind: types.KindTextarea},
				{ID: "estilo", Label: "Estilo artístico", Placeholder: "Ej: Van Gogh, Cyberpunk, Acuarela", Kind: types.KindInput},
				{ID: "colores", Label: "Paleta de colores", Placeholder: "Ej: Colores cálidos, tonos pastel, neón", Kind: types.KindInput},
			},
			Render: func(v types.FormValues) string {
				return fmt.Sprintf("Genera una imagen de %s, con un estilo artístico de %s. La paleta de colores principal debe ser de %s.",
					v.Get("descripcion"), v.Get("estilo"), v.Get("colores"))
			},
		},
		types.CategoryVideo: {
			Fields: []types.FieldSpec{
				{ID: "escena", Label: "Descripción de la escena", Placeholder: "Ej: Una persecución de coches en una ciudad futurista de noche", Kind: types.KindTextarea},
				{ID: "ambiente", Label: "Ambiente / Mood", Placeholder: "Ej: Lleno de suspense, cómico, épico", Kind: types.KindInput},
				{ID: "duracion", Label: "Duración aproximada", Placeholder: "Ej: 15 segundos", Kind: types.KindInput},
			},
			Render: func(v types.FormValues) string {
				return fmt.Sprintf("Crea un clip de video de una escena de %s. El ambiente debe ser %s. Duración aproximada: %s.",
					v.Get("escena"), v.Get("ambiente"), v.Get("duracion"))
			},
		},
		types.CategorySound: {
			Fields: []types.FieldSpec{
				{ID: "tipo", Label: "Tipo de sonido o música", Placeholder: "Ej: Efecto de sonido, loop de batería, melodía de piano", Kind: types.KindInput},
				{ID: "genero", Label: "Género / Estilo", Placeholder: "Ej: Lo-fi, cinemático, ciencia ficción, naturaleza", Kind: types.KindInput},
				{ID: "descripcion", Label: "Descripción detallada", Placeholder: "Ej: Sonido de lluvia cayendo sobre una ventana, con truenos lejanos", Kind: types.KindTextarea},
			},
			Render: func(v types.FormValues) string {
				return fmt.Sprintf("Genera un %s de estilo %s. Descripción: %s.",
					v.Get("tipo"), v.Get("genero"), v.Get("descripcion"))
			},
		},
		types.CategoryCode: {
			Fields: []types.FieldSpec{
				{ID: "lenguaje", Label: "Lenguaje de programación", Placeholder: "Ej: JavaScript, Python, Rust", Kind: types.KindInput},
				{ID: "funcionalidad", Label: "Funcionalidad a implementar", Placeholder: "Ej: Una función que ordene un array de objetos por una propiedad", Kind: types.KindTextarea},
				{ID: "framework", Label: "Framework o librería (opcional)", Placeholder: "Ej: React, Django, Express", Kind: types.KindInput},
			},
			Render: func(v types.FormValues) string {
				framework := ""
				if f := v.Get("framework"); f != "" {
					framework = "usando " + f
				}
				return fmt.Sprintf("Escribe código en %s %s para implementar la siguiente funcionalidad: %s. Añade comentarios explicando las partes clave.",
					v.Get("lenguaje"), framework, v.Get("funcionalidad"))
			},
		},
	}
}
