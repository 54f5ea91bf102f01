// Package cartsync reconciles the storefront's anonymous local cart with the
// authenticated user's server-held cart, producing one canonical cart on both
// sides.
package cartsync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abdelemjid/carpet-shop-sub000/models"
)

// Local is the anonymous cart cache (localcart.Cache satisfies it).
type Local interface {
	Lines() []models.CartLine
	ReplaceAll(lines []models.CartLine) error
}

// Remote is the server cart behind the REST API (Client satisfies it).
type Remote interface {
	Fetch(ctx context.Context) ([]models.CartLine, error)
	Replace(ctx context.Context, lines []models.CartLine) (inserted, updated int, err error)
}

// Reconciler merges the two cart sources. Run it once on the transition from
// anonymous to authenticated; running it again is harmless since every remote
// write is a full replacement.
type Reconciler struct {
	local  Local
	remote Remote
}

func NewReconciler(local Local, remote Remote) *Reconciler {
	return &Reconciler{local: local, remote: remote}
}

// Merge combines local and remote lines into one cart. Remote lines are the
// base and keep their metadata snapshots; a local line for the same product
// only overrides the quantity. Local lines without a remote counterpart are
// appended as-is.
func Merge(local, remote []models.CartLine) []models.CartLine {
	merged := make([]models.CartLine, len(remote))
	copy(merged, remote)
	index := make(map[uint]int, len(merged))
	for i, l := range merged {
		index[l.ProductID] = i
	}
	for _, l := range local {
		if i, ok := index[l.ProductID]; ok {
			merged[i].OrderQuantity = l.OrderQuantity
		} else {
			merged = append(merged, l)
		}
	}
	return merged
}

// Sync applies the reconciliation decision table. On failure the local cart is
// left untouched and keeps serving as the fallback view; the caller may retry.
func (r *Reconciler) Sync(ctx context.Context) error {
	remoteLines, err := r.remote.Fetch(ctx)
	if err != nil {
		slog.Warn("cart sync: fetching server cart failed, keeping local cart", "error", err)
		return fmt.Errorf("failed to fetch server cart: %w", err)
	}
	// Confirmed lines are purchase history, not part of the live cart.
	pending := remoteLines[:0:0]
	for _, l := range remoteLines {
		if !l.Confirmed {
			pending = append(pending, l)
		}
	}

	local := r.local.Lines()
	switch {
	case len(local) == 0 && len(pending) == 0:
		return nil

	case len(pending) == 0:
		// Server knows nothing yet: push the local cart as-is.
		if _, _, err := r.remote.Replace(ctx, local); err != nil {
			slog.Warn("cart sync: pushing local cart failed", "error", err)
			return fmt.Errorf("failed to push local cart: %w", err)
		}
		return nil

	case len(local) == 0:
		// Nothing gathered while anonymous: adopt the server cart.
		return r.local.ReplaceAll(pending)

	default:
		merged := Merge(local, pending)
		if _, _, err := r.remote.Replace(ctx, merged); err != nil {
			slog.Warn("cart sync: pushing merged cart failed, keeping local cart", "error", err)
			return fmt.Errorf("failed to push merged cart: %w", err)
		}
		return r.local.ReplaceAll(merged)
	}
}
