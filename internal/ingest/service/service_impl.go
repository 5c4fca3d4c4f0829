package service

import (
	"context"
	"strings"

	carrierdomain "github.com/carrierdesk/carrierdesk/internal/carrier/domain"
	"github.com/carrierdesk/carrierdesk/internal/identity"
	"github.com/carrierdesk/carrierdesk/internal/ingest/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log      *zap.Logger
	Registry domain.RegistryLookup
	OCR      domain.DocumentOCR
	Carriers carrierdomain.Service
}

type Service struct {
	log      *zap.Logger
	registry domain.RegistryLookup
	ocr      domain.DocumentOCR
	carriers carrierdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		log:      p.Log.Named("ingest.service"),
		registry: p.Registry,
		ocr:      p.OCR,
		carriers: p.Carriers,
	}
}

func (s *Service) Ingest(ctx context.Context, usdots []string) (domain.IngestResponse, error) {
	if _, ok := identity.OrgIDFromContext(ctx); !ok {
		return domain.IngestResponse{}, domain.ErrInvalidIdentity
	}

	cleaned := make([]string, 0, len(usdots))
	seen := make(map[string]struct{}, len(usdots))
	for _, usdot := range usdots {
		usdot = strings.TrimSpace(usdot)
		if usdot == "" {
			continue
		}
		if _, dup := seen[usdot]; dup {
			continue
		}
		seen[usdot] = struct{}{}
		cleaned = append(cleaned, usdot)
	}
	if len(cleaned) == 0 {
		return domain.IngestResponse{}, domain.ErrEmptyBatch
	}

	resp := domain.IngestResponse{Requested: len(cleaned)}
	lookups := make([]carrierdomain.Lookup, 0, len(cleaned))
	for _, usdot := range cleaned {
		lookup, err := s.registry.Lookup(ctx, usdot)
		if err != nil {
			s.log.Warn("registry lookup failed",
				zap.String("usdot", usdot),
				zap.Error(err),
			)
			resp.Results = append(resp.Results, domain.ItemResult{
				USDOT:  usdot,
				Detail: "registry lookup failed",
			})
			continue
		}
		if !lookup.Success {
			resp.Results = append(resp.Results, domain.ItemResult{
				USDOT:  usdot,
				Detail: "carrier not found in registry",
			})
			continue
		}
		lookups = append(lookups, lookup)
	}

	if len(lookups) > 0 {
		persisted, err := s.carriers.BulkUpsert(ctx, lookups)
		if err != nil {
			return domain.IngestResponse{}, err
		}
		resp.Persisted = len(persisted)
		for _, record := range persisted {
			resp.Results = append(resp.Results, domain.ItemResult{
				USDOT:   record.USDOT,
				Success: true,
			})
		}
	}

	s.log.Info("ingest batch processed",
		zap.Int("requested", resp.Requested),
		zap.Int("persisted", resp.Persisted),
	)
	return resp, nil
}

func (s *Service) IngestDocument(ctx context.Context, filename string, content []byte) (domain.IngestResponse, error) {
	if _, ok := identity.OrgIDFromContext(ctx); !ok {
		return domain.IngestResponse{}, domain.ErrInvalidIdentity
	}
	if len(content) == 0 {
		return domain.IngestResponse{}, domain.ErrEmptyDocument
	}

	usdots, err := s.ocr.ExtractUSDOTs(ctx, filename, content)
	if err != nil {
		s.log.Error("document extraction failed",
			zap.String("filename", filename),
			zap.Error(err),
		)
		return domain.IngestResponse{}, domain.ErrOCRUnavailable
	}
	if len(usdots) == 0 {
		return domain.IngestResponse{}, domain.ErrEmptyBatch
	}

	return s.Ingest(ctx, usdots)
}
