package handlers

import (
	"html/template"

	"group-order-client/internal/config"
	"group-order-client/internal/receipt"

	"go.uber.org/zap"
)

type Handler struct {
	Logger   *zap.Logger
	Config   config.Config
	Archiver *receipt.Archiver

	pages *template.Template
}

func New(logger *zap.Logger, cfg config.Config, archiver *receipt.Archiver) (*Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}
	return &Handler{Logger: logger, Config: cfg, Archiver: archiver, pages: pages}, nil
}
