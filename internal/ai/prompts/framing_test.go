package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetGenerationPrompt(t *testing.T) {
	got := GetGenerationPrompt("Genera una imagen de un gato")
	require.True(t, strings.HasPrefix(got, "Eres un experto en la creación de prompts para IA."))
	require.True(t, strings.HasSuffix(got, `Idea del usuario: "Genera una imagen de un gato"`))
}

func TestGetImprovementPrompt(t *testing.T) {
	got := GetImprovementPrompt("prompt original")
	require.Contains(t, got, "Mantén el idioma español.")
	require.True(t, strings.HasSuffix(got, `Prompt a mejorar: "prompt original"`))
}
