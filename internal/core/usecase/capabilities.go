package usecase

import (
	"github.com/kirillkom/textdesk/internal/core/domain"
	"github.com/kirillkom/textdesk/internal/core/ports"
)

// CapabilityRegistry is the registry surface the capability use case reads.
type CapabilityRegistry interface {
	ports.CapabilityChecker
	Snapshot(language string) map[domain.Feature]domain.Availability
}

// CapabilitiesUseCase exposes live availability and publishes every
// snapshot to metrics.
type CapabilitiesUseCase struct {
	registry CapabilityRegistry
	metrics  ports.FeatureMetrics
}

func NewCapabilitiesUseCase(registry CapabilityRegistry, metrics ports.FeatureMetrics) *CapabilitiesUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &CapabilitiesUseCase{registry: registry, metrics: metrics}
}

func (uc *CapabilitiesUseCase) CheckPDFSummary() domain.Availability {
	return uc.registry.CheckPDFSummary()
}

func (uc *CapabilitiesUseCase) CheckTextSummary(pdfEnabled, checkPDF, checkText bool, language string) domain.Availability {
	return uc.registry.CheckTextSummary(pdfEnabled, checkPDF, checkText, language)
}

func (uc *CapabilitiesUseCase) CheckKeywords(language string) domain.Availability {
	return uc.registry.CheckKeywords(language)
}

func (uc *CapabilitiesUseCase) CheckScreenshot() domain.Availability {
	return uc.registry.CheckScreenshot()
}

func (uc *CapabilitiesUseCase) Snapshot(language string) map[domain.Feature]domain.Availability {
	snap := uc.registry.Snapshot(language)
	uc.metrics.ObserveAvailability(snap)
	return snap
}
