package handlers

import "go.uber.org/zap"

// RunDealMaintenance is the background worker body main.go runs on a
// ticker. Statuses roll first so reconciliation sees the current state,
// then usage counters catch up with orders placed since the last pass.
func (h *Handlers) RunDealMaintenance() {
	if err := h.RefreshDealStatuses(); err != nil {
		h.Logger.Warn("deal status refresh failed", zap.Error(err))
	}

	counted, err := h.ReconcileDealUsage()
	if err != nil {
		h.Logger.Warn("deal usage reconciliation failed", zap.Error(err))
		return
	}
	if counted > 0 {
		h.Logger.Info("deal usage reconciled", zap.Int("orders", counted))
	}
}
