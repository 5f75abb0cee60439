package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sitecel/portfolio-api/internal/ai"
	"github.com/sitecel/portfolio-api/pkg/logger"
	"go.uber.org/zap"
)

var (
	ErrInvalidMessage  = errors.New("message must be between 1 and 500 characters")
	ErrChatUnavailable = errors.New("chat service unavailable")
)

const (
	maxMessageLength  = 500
	maxHistoryEntries = 5

	// FallbackResponse is returned to the user whenever the upstream
	// provider fails.
	FallbackResponse = "Disculpa, estoy teniendo problemas técnicos en este momento. " +
		"Por favor, contacta directamente a contacto@sitecel.cl"
)

// systemContext primes the assistant with the company profile. Kept in
// Spanish because that is the language of the site and its visitors.
const systemContext = `Eres el asistente virtual de Sitecel Technology SpA, empresa chilena especializada en construcción, tecnología y consultoría.

SERVICIOS QUE OFRECEMOS (en orden de importancia):

1. CONSTRUCCIÓN Y OBRAS CIVILES MENORES
   - Reparación y construcción de pisos (cerámicos, porcelanato, madera)
   - Pintura y reparación de paredes (interiores y exteriores)
   - Reparaciones generales de viviendas y oficinas
   - Instalación y reparación de calefones (gas y eléctricos)
   - Mantención de baños e instalaciones eléctricas

2. TELECOMUNICACIONES Y TECNOLOGÍA
   - Dirección y gestión de proyectos tecnológicos
   - Consultoría en transformación digital
   - Desarrollo de software personalizado, aplicaciones móviles y web
   - Modernización e integración de sistemas

UBICACIÓN Y CONTACTO:
- Ubicación: Santiago, Chile
- Email: sitecelspa@gmail.com
- Website: www.sitecel.cl

INSTRUCCIONES IMPORTANTES:
- Responde siempre en español de Chile, profesional pero cercano
- Prioriza PRIMERO los servicios de construcción y obras civiles
- Si preguntan por precios, explica que cada proyecto es único y ofrecemos cotizaciones personalizadas sin costo
- Mantén respuestas concisas (máximo 3-4 párrafos)`

// ChatMessage is one turn of the conversation history.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatService struct {
	client *ai.GeminiClient
}

func NewChatService(client *ai.GeminiClient) *ChatService {
	return &ChatService{client: client}
}

// Complete forwards the message plus the most recent history to the AI
// provider. On any upstream failure it returns the user-safe fallback text
// together with ErrChatUnavailable; callers must not crash.
func (s *ChatService) Complete(ctx context.Context, message string, history []ChatMessage) (string, error) {
	length := utf8.RuneCountInString(message)
	if length < 1 || length > maxMessageLength {
		return "", ErrInvalidMessage
	}

	response, err := s.client.GenerateContent(ctx, buildPrompt(message, history))
	if err != nil {
		logger.Log.Error("Chat completion failed",
			zap.Error(err),
		)
		return FallbackResponse, ErrChatUnavailable
	}

	logger.Log.Info("Chat completion generated",
		zap.Int("message_length", length),
		zap.Int("history_entries", len(history)),
	)

	return response, nil
}

// Healthy probes the upstream provider with a trivial completion.
func (s *ChatService) Healthy(ctx context.Context) error {
	if _, err := s.client.GenerateContent(ctx, "test"); err != nil {
		return ErrChatUnavailable
	}
	return nil
}

// Model reports the upstream model name for the health endpoint.
func (s *ChatService) Model() string {
	return s.client.Model
}

func buildPrompt(message string, history []ChatMessage) string {
	var b strings.Builder
	b.WriteString(systemContext)
	b.WriteString("\n\n")

	// Only the most recent turns are forwarded for context.
	if len(history) > maxHistoryEntries {
		history = history[len(history)-maxHistoryEntries:]
	}
	for _, msg := range history {
		fmt.Fprintf(&b, "%s: %s\n", msg.Role, msg.Content)
	}

	fmt.Fprintf(&b, "\nUsuario: %s\n\nAsistente:", message)
	return b.String()
}
