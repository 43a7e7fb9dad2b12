package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rxtech-lab/paper-trading/internal/types"
	"github.com/rxtech-lab/paper-trading/pkg/errors"
)

// Buy opens a new position in symbol at the given price, spending up to
// amount of cash. The quantity is the largest whole-lot share count the
// amount covers at that price; the buy fee is charged on top of the share
// cost. A symbol already held cannot be bought again.
func (l *Ledger) Buy(symbol string, price decimal.Decimal, ts time.Time, name string, amount decimal.Decimal) (types.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, held := l.state.Holdings[symbol]; held {
		return types.Transaction{}, errors.Newf(errors.ErrCodeAlreadyHeld, "already holding %s", symbol)
	}

	if !price.IsPositive() {
		return types.Transaction{}, errors.Newf(errors.ErrCodeInvalidPrice, "invalid buy price %s for %s", price, symbol)
	}

	shares := amount.Div(price).IntPart() / types.Lot * types.Lot

	// Div rounds at its precision limit, so back off one lot if it overshot.
	if shares > 0 && price.Mul(decimal.NewFromInt(shares)).GreaterThan(amount) {
		shares -= types.Lot
	}

	if shares <= 0 {
		return types.Transaction{}, errors.Newf(errors.ErrCodeLotTooSmall, "amount %s cannot buy a full lot of %s at %s", amount, symbol, price)
	}

	quantity := decimal.NewFromInt(shares)
	cost := price.Mul(quantity)
	buyFee := l.fees.BuyFee(cost)
	total := cost.Add(buyFee)

	if total.GreaterThan(l.state.Cash) {
		return types.Transaction{}, errors.Newf(errors.ErrCodeInsufficientFunds, "need %s to buy %s but only %s available", total, symbol, l.state.Cash)
	}

	prev := l.state
	l.state = prev.clone()

	tx := types.Transaction{
		ID:       uuid.NewString(),
		Type:     types.TransactionTypeBuy,
		Symbol:   symbol,
		Name:     name,
		Price:    price,
		Quantity: quantity.IntPart(),
		Fee:      buyFee,
		Time:     ts,
	}

	l.state.Cash = l.state.Cash.Sub(total)
	l.state.TotalFees = l.state.TotalFees.Add(buyFee)
	l.state.Holdings[symbol] = &types.Position{
		Symbol:       symbol,
		Name:         name,
		Quantity:     quantity.IntPart(),
		BuyPrice:     price,
		BuyTime:      ts,
		CurrentPrice: price,
		MaxPrice:     price,
		BuyFee:       buyFee,
	}
	l.state.History = append(l.state.History, tx)

	if err := l.commit(prev); err != nil {
		return types.Transaction{}, err
	}

	l.log.Info("bought",
		zap.String("symbol", symbol),
		zap.String("price", price.String()),
		zap.Int64("quantity", tx.Quantity),
		zap.String("fee", buyFee.String()),
		zap.String("cash", l.state.Cash.String()),
	)

	return tx, nil
}

// Sell closes the entire position in symbol at the given price. Positions
// opened the same calendar day cannot be sold (T+1 settlement). The realized
// PnL is net of the fees of both legs.
func (l *Ledger) Sell(symbol string, price decimal.Decimal, ts time.Time, reason string) (types.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	position, held := l.state.Holdings[symbol]
	if !held {
		return types.Transaction{}, errors.Newf(errors.ErrCodeNotHeld, "not holding %s", symbol)
	}

	if !price.IsPositive() {
		return types.Transaction{}, errors.Newf(errors.ErrCodeInvalidPrice, "invalid sell price %s for %s", price, symbol)
	}

	if position.BoughtOn(ts) {
		return types.Transaction{}, errors.Newf(errors.ErrCodeSettlementViolation, "%s was bought today and settles tomorrow", symbol)
	}

	quantity := decimal.NewFromInt(position.Quantity)
	revenue := price.Mul(quantity)
	sellFee := l.fees.SellFee(revenue)
	entryCost := position.Cost().Add(position.BuyFee)
	pnl := revenue.Sub(position.Cost()).Sub(sellFee).Sub(position.BuyFee)
	pnlRate := pnl.Div(entryCost)

	prev := l.state
	l.state = prev.clone()

	tx := types.Transaction{
		ID:        uuid.NewString(),
		Type:      types.TransactionTypeSell,
		Symbol:    symbol,
		Name:      position.Name,
		BuyPrice:  position.BuyPrice,
		SellPrice: price,
		Quantity:  position.Quantity,
		BuyFee:    position.BuyFee,
		SellFee:   sellFee,
		Time:      ts,
		PnL:       pnl,
		PnLRate:   pnlRate,
		Reason:    reason,
	}

	l.state.Cash = l.state.Cash.Add(revenue).Sub(sellFee)
	l.state.TotalFees = l.state.TotalFees.Add(sellFee)
	delete(l.state.Holdings, symbol)
	l.state.History = append(l.state.History, tx)

	if err := l.commit(prev); err != nil {
		return types.Transaction{}, err
	}

	l.log.Info("sold",
		zap.String("symbol", symbol),
		zap.String("price", price.String()),
		zap.Int64("quantity", tx.Quantity),
		zap.String("pnl", pnl.String()),
		zap.String("reason", reason),
		zap.String("cash", l.state.Cash.String()),
	)

	return tx, nil
}

// CheckTrailingStop reports whether the position in symbol should be sold
// under the trailing-stop rule: the price has pulled back from its
// high-water mark by at least the configured drop, while still sitting above
// the entry price by at least the configured minimum gain. Both conditions
// must hold; the check never fires on a position that is under water or
// making a fresh high. It is advisory only and mutates nothing.
func (l *Ledger) CheckTrailingStop(symbol string, currentPrice decimal.Decimal) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	position, held := l.state.Holdings[symbol]
	if !held || !currentPrice.IsPositive() {
		return false
	}

	maxPrice := position.MaxPrice
	if currentPrice.GreaterThan(maxPrice) {
		maxPrice = currentPrice
	}

	if !maxPrice.IsPositive() || !position.BuyPrice.IsPositive() {
		return false
	}

	drop := maxPrice.Sub(currentPrice).Div(maxPrice)
	gain := currentPrice.Sub(position.BuyPrice).Div(position.BuyPrice)

	return drop.GreaterThanOrEqual(l.trailingDrop) && gain.GreaterThanOrEqual(l.trailingGain)
}

// Deposit adds cash to the account.
func (l *Ledger) Deposit(amount decimal.Decimal, ts time.Time, notes string) (types.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !amount.IsPositive() {
		return types.Transaction{}, errors.Newf(errors.ErrCodeInvalidAmount, "deposit amount %s must be positive", amount)
	}

	prev := l.state
	l.state = prev.clone()

	tx := types.Transaction{
		ID:     uuid.NewString(),
		Type:   types.TransactionTypeDeposit,
		Amount: amount,
		Time:   ts,
		Notes:  notes,
	}

	l.state.Cash = l.state.Cash.Add(amount)
	l.state.History = append(l.state.History, tx)

	if err := l.commit(prev); err != nil {
		return types.Transaction{}, err
	}

	l.log.Info("deposited",
		zap.String("amount", amount.String()),
		zap.String("cash", l.state.Cash.String()),
	)

	return tx, nil
}

// AddManualPosition records a fee-free administrative buy, used to mirror
// shares acquired outside the executor. Buying into an existing position
// tops it up at the exact weighted-average entry price; the original BuyTime
// is kept so settlement restrictions are never loosened by a top-up.
func (l *Ledger) AddManualPosition(symbol string, name string, price decimal.Decimal, quantity int64, ts time.Time) (types.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !price.IsPositive() {
		return types.Transaction{}, errors.Newf(errors.ErrCodeInvalidPrice, "invalid price %s for %s", price, symbol)
	}

	if quantity <= 0 || quantity%types.Lot != 0 {
		return types.Transaction{}, errors.Newf(errors.ErrCodeLotTooSmall, "quantity %d is not a positive multiple of %d", quantity, types.Lot)
	}

	cost := price.Mul(decimal.NewFromInt(quantity))
	if cost.GreaterThan(l.state.Cash) {
		return types.Transaction{}, errors.Newf(errors.ErrCodeInsufficientFunds, "need %s to add %s but only %s available", cost, symbol, l.state.Cash)
	}

	prev := l.state
	l.state = prev.clone()

	tx := types.Transaction{
		ID:       uuid.NewString(),
		Type:     types.TransactionTypeBuyManual,
		Symbol:   symbol,
		Name:     name,
		Price:    price,
		Quantity: quantity,
		Time:     ts,
	}

	l.state.Cash = l.state.Cash.Sub(cost)

	if position, held := l.state.Holdings[symbol]; held {
		oldCost := position.Cost()
		newQuantity := position.Quantity + quantity
		position.BuyPrice = oldCost.Add(cost).Div(decimal.NewFromInt(newQuantity))
		position.Quantity = newQuantity
		position.CurrentPrice = price

		if price.GreaterThan(position.MaxPrice) {
			position.MaxPrice = price
		}

		if name != "" {
			position.Name = name
		}
	} else {
		l.state.Holdings[symbol] = &types.Position{
			Symbol:       symbol,
			Name:         name,
			Quantity:     quantity,
			BuyPrice:     price,
			BuyTime:      ts,
			CurrentPrice: price,
			MaxPrice:     price,
			BuyFee:       decimal.Zero,
		}
	}

	l.state.History = append(l.state.History, tx)

	if err := l.commit(prev); err != nil {
		return types.Transaction{}, err
	}

	l.log.Info("added manual position",
		zap.String("symbol", symbol),
		zap.String("price", price.String()),
		zap.Int64("quantity", quantity),
		zap.String("cash", l.state.Cash.String()),
	)

	return tx, nil
}

// SellManualPosition records a fee-free administrative sell of part or all
// of a position. Partial sells keep the remaining shares at the original
// entry price; the T+1 settlement rule applies the same as to executor
// sells.
func (l *Ledger) SellManualPosition(symbol string, price decimal.Decimal, quantity int64, ts time.Time, notes string) (types.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	position, held := l.state.Holdings[symbol]
	if !held {
		return types.Transaction{}, errors.Newf(errors.ErrCodeNotHeld, "not holding %s", symbol)
	}

	if !price.IsPositive() {
		return types.Transaction{}, errors.Newf(errors.ErrCodeInvalidPrice, "invalid price %s for %s", price, symbol)
	}

	if quantity <= 0 || quantity%types.Lot != 0 {
		return types.Transaction{}, errors.Newf(errors.ErrCodeLotTooSmall, "quantity %d is not a positive multiple of %d", quantity, types.Lot)
	}

	if quantity > position.Quantity {
		return types.Transaction{}, errors.Newf(errors.ErrCodeInvalidQuantity, "cannot sell %d of %s, only %d held", quantity, symbol, position.Quantity)
	}

	if position.BoughtOn(ts) {
		return types.Transaction{}, errors.Newf(errors.ErrCodeSettlementViolation, "%s was bought today and settles tomorrow", symbol)
	}

	qty := decimal.NewFromInt(quantity)
	revenue := price.Mul(qty)
	pnl := price.Sub(position.BuyPrice).Mul(qty)
	pnlRate := decimal.Zero

	if position.BuyPrice.IsPositive() {
		pnlRate = pnl.Div(position.BuyPrice.Mul(qty))
	}

	prev := l.state
	l.state = prev.clone()

	tx := types.Transaction{
		ID:        uuid.NewString(),
		Type:      types.TransactionTypeSellManual,
		Symbol:    symbol,
		Name:      position.Name,
		BuyPrice:  position.BuyPrice,
		SellPrice: price,
		Quantity:  quantity,
		Time:      ts,
		PnL:       pnl,
		PnLRate:   pnlRate,
		Notes:     notes,
	}

	l.state.Cash = l.state.Cash.Add(revenue)

	remaining := l.state.Holdings[symbol]
	if quantity == remaining.Quantity {
		delete(l.state.Holdings, symbol)
	} else {
		remaining.Quantity -= quantity
		remaining.CurrentPrice = price
	}

	l.state.History = append(l.state.History, tx)

	if err := l.commit(prev); err != nil {
		return types.Transaction{}, err
	}

	l.log.Info("sold manual position",
		zap.String("symbol", symbol),
		zap.String("price", price.String()),
		zap.Int64("quantity", quantity),
		zap.String("pnl", pnl.String()),
		zap.String("cash", l.state.Cash.String()),
	)

	return tx, nil
}
