package main

import (
	"context"
	"fmt"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/subosito/gotenv"

	"github.com/careerprep/interview-agent/adapters/http"
	"github.com/careerprep/interview-agent/adapters/llm"
	"github.com/careerprep/interview-agent/adapters/speech"
	"github.com/careerprep/interview-agent/adapters/tts"
	"github.com/careerprep/interview-agent/adapters/websocket"
	"github.com/careerprep/interview-agent/config"
	"github.com/careerprep/interview-agent/domain"
	"github.com/careerprep/interview-agent/usecase"
)

func main() {
	gotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	generator, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		log.Printf("generation service unavailable (%v); interviews will report a configuration failure", err)
		generator = llm.NewUnconfigured()
	}

	registry := usecase.NewSessionRegistry(generator)

	var synthesizer domain.Synthesizer
	if googleTTS, err := tts.NewGoogleTTS(ctx, cfg.TTSLanguageCode, cfg.TTSVoiceName); err != nil {
		log.Printf("speech synthesis unavailable: %v", err)
	} else {
		synthesizer = googleTTS
	}

	var transcriber domain.Transcriber
	if googleSpeech, err := speech.NewGoogleSpeech(ctx, cfg.TTSLanguageCode); err != nil {
		log.Printf("speech transcription unavailable: %v", err)
	} else {
		transcriber = googleSpeech
	}

	server := websocket.NewServer(registry, synthesizer)
	handler := http.NewInterviewHandler(registry, synthesizer, transcriber, server.GetHub())

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Secure())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"}, // In production, specify exact origins
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			"Content-Length",
		},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	e.Use(middleware.BodyLimit("10MB"))

	e.GET("/ws", server.Handler)

	api := e.Group("/api/v1")
	api.GET("/health", handler.HealthCheck)
	api.POST("/start", handler.StartInterview)
	api.POST("/message", handler.SendMessage)
	api.POST("/message/audio", handler.SendAudioMessage)
	api.DELETE("/session/:id", handler.EndSession)
	api.POST("/tts", handler.Synthesize)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	log.Printf("Starting server on %s", addr)
	log.Println("Available endpoints:")
	log.Println("  GET    /api/v1/health         - Health check")
	log.Println("  POST   /api/v1/start          - Start an interview")
	log.Println("  POST   /api/v1/message        - Send a candidate answer")
	log.Println("  POST   /api/v1/message/audio  - Send a recorded answer")
	log.Println("  DELETE /api/v1/session/:id    - End a session")
	log.Println("  POST   /api/v1/tts            - Synthesize speech")
	log.Println("  GET    /ws                    - Live interview (WebSocket)")
	log.Fatal(e.Start(addr))
}
