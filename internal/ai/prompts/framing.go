package prompts

import "fmt"

// ErrorMessage replaces the generated text whenever a remote call fails.
const ErrorMessage = "Hubo un error al conectar con la IA. Por favor, inténtalo de nuevo."

// SavedMessage acknowledges a successful save.
const SavedMessage = "Prompt guardado!"

// GetGenerationPrompt frames a rendered instruction for the prompt-engineer model.
func GetGenerationPrompt(instruction string) string {
	return fmt.Sprintf(
		`Eres un experto en la creación de prompts para IA. Basado en la siguiente idea, genera un prompt detallado y efectivo en español. Idea del usuario: "%s"`,
		instruction,
	)
}

// GetImprovementPrompt asks the model to expand an existing prompt, keeping Spanish.
func GetImprovementPrompt(current string) string {
	return fmt.Sprintf(
		`Mejora y expande el siguiente prompt para obtener mejores resultados de una IA generativa. Hazlo más detallado, añade contexto y sugiere parámetros si es aplicable. Mantén el idioma español. Prompt a mejorar: "%s"`,
		current,
	)
}
