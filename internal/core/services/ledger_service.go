package services

import (
	"context"
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-app/fintrack_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// ledgerPoster couples ledger appends with their matching balance mutations.
// The transaction and investment services embed it so every money movement
// goes through the same two-step write inside one database transaction.
type ledgerPoster struct {
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
}

// applyLedgerEffect appends one entry and applies its balance change. Both
// writes share the caller's transaction.
func (p ledgerPoster) applyLedgerEffect(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry, change domain.BalanceChange, userID string, now time.Time) error {
	if err := p.ledgerRepo.AppendEntryInTx(ctx, tx, entry); err != nil {
		return err
	}
	return p.accountRepo.ApplyBalanceChangesInTx(ctx, tx, []domain.BalanceChange{change}, userID, now)
}

// ledgerReplacement describes one revert-then-reapply step. Edits and deletes
// are both expressed through it; a delete simply has no new entry and no new
// change.
type ledgerReplacement struct {
	retireEntries func(ctx context.Context, tx pgx.Tx) error // delete-by-provenance for the old entries
	oldChange     *domain.BalanceChange                      // reversed before the new state lands; nil when nothing was applied
	persistFields func(ctx context.Context, tx pgx.Tx) error // UPDATE (or soft delete) of the transaction row itself
	newEntry      *domain.LedgerEntry                        // nil when the new state has no ledger presence
	newChange     *domain.BalanceChange
}

// replaceLedgerEffect runs the canonical edit ordering: retire the old
// entries, revert the old balance effect, persist the new row state, append
// the new entry, apply the new effect. The caller must hold the account row
// lock for every account the changes touch.
func (p ledgerPoster) replaceLedgerEffect(ctx context.Context, tx pgx.Tx, rep ledgerReplacement, userID string, now time.Time) error {
	if rep.retireEntries != nil {
		if err := rep.retireEntries(ctx, tx); err != nil {
			return err
		}
	}
	if rep.oldChange != nil {
		if err := p.accountRepo.ApplyBalanceChangesInTx(ctx, tx, []domain.BalanceChange{rep.oldChange.Reversed()}, userID, now); err != nil {
			return err
		}
	}
	if rep.persistFields != nil {
		if err := rep.persistFields(ctx, tx); err != nil {
			return err
		}
	}
	if rep.newEntry != nil {
		if err := p.ledgerRepo.AppendEntryInTx(ctx, tx, *rep.newEntry); err != nil {
			return err
		}
	}
	if rep.newChange != nil {
		if err := p.accountRepo.ApplyBalanceChangesInTx(ctx, tx, []domain.BalanceChange{*rep.newChange}, userID, now); err != nil {
			return err
		}
	}
	return nil
}
