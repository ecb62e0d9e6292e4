package usecase

import (
	"context"

	"agentic-landing-site/internal/domain"
)

var services = []domain.Service{
	{
		Title:       "Agentic AI Education",
		Description: "Empower yourself with comprehensive courses on agent-based AI, transforming your skills for the future.",
		Stats:       []string{"99.9% Accuracy", "24/7 Operation", "1ms Response Time"},
		Color:       "#00ffff",
	},
	{
		Title:       "AI Agent Marketplace",
		Description: "Access a diverse range of AI agents and Multi-Agent Control Protocol (MCP) servers tailored to various applications.",
		Stats:       []string{"1000+ Qubits", "Quantum Supremacy", "Error Correction"},
		Color:       "#bf00ff",
	},
	{
		Title:       "Agentic Startup Incubation",
		Description: "Launch your AI-driven startup with our support, from concept to deployment.",
		Stats:       []string{"Adaptive Learning", "Self-Optimization", "Real-time Training"},
		Color:       "#00ff00",
	},
	{
		Title:       "Edge AI Implementation",
		Description: "Deploying intelligent systems at the edge for faster, more efficient processing",
		Stats:       []string{"Global Edge Network", "5G Integration", "Local Processing"},
		Color:       "#ff00ff",
	},
}

var showcase = []domain.ShowcaseItem{
	{
		Title:       "Agentia World Platform",
		Description: "A comprehensive environment where AI agents operate and interact, demonstrating real-world applications.",
		Stats: []domain.ShowcaseStat{
			{Label: "accuracy", Value: 99.9},
			{Label: "speed", Value: 0.001},
			{Label: "nodes", Value: 1000000},
		},
		Color: "#00ffff",
		Shape: "Torus",
	},
	{
		Title:       "Panaversity Learning Hub",
		Description: "An educational platform utilizing agentic AI to provide personalized learning experiences.",
		Stats: []domain.ShowcaseStat{
			{Label: "qubits", Value: 1024},
			{Label: "coherence", Value: 100},
			{Label: "fidelity", Value: 99.99},
		},
		Color: "#ff00ff",
		Shape: "Icosahedron",
	},
	{
		Title:       "MCP Server Network",
		Description: "A robust infrastructure supporting the deployment and management of multiple AI agents across various sectors.",
		Stats: []domain.ShowcaseStat{
			{Label: "nodes", Value: 500},
			{Label: "latency", Value: 1},
			{Label: "uptime", Value: 99.999},
		},
		Color: "#00ff00",
		Shape: "Octahedron",
	},
}

var contactChannels = []domain.ContactChannel{
	{
		Kind:        "email",
		Title:       "Email Us",
		Description: "Our friendly team is here to help.",
		Label:       "sikandar.tahir.04@gmail.com",
		Href:        "mailto:sikandar.tahir.04@gmail.com",
	},
	{
		Kind:        "chat",
		Title:       "Live Chat",
		Description: "Available 24/7 for enterprise customers.",
	},
	{
		Kind:        "phone",
		Title:       "Phone",
		Description: "Mon-Fri from 8am to 5pm.",
		Label:       "+92 312 3456789",
		Href:        "tel:+923123456789",
	},
}

type contentUsecase struct{}

// NewContentUsecase serves the static cards of the landing page
func NewContentUsecase() domain.ContentUsecase {
	return &contentUsecase{}
}

// Callers get copies so the package-level arrays stay read-only.

func (uc *contentUsecase) ListServices(ctx context.Context) []domain.Service {
	out := make([]domain.Service, len(services))
	for i, s := range services {
		s.Stats = append([]string(nil), s.Stats...)
		out[i] = s
	}
	return out
}

func (uc *contentUsecase) ListShowcase(ctx context.Context) []domain.ShowcaseItem {
	out := make([]domain.ShowcaseItem, len(showcase))
	for i, item := range showcase {
		item.Stats = append([]domain.ShowcaseStat(nil), item.Stats...)
		out[i] = item
	}
	return out
}

func (uc *contentUsecase) ListContactChannels(ctx context.Context) []domain.ContactChannel {
	return append([]domain.ContactChannel(nil), contactChannels...)
}
