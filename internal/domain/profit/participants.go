package profit

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Participant socio con su peso en el reparto de gastos compartidos.
type Participant struct {
	Owner  entity.Owner
	Weight decimal.Decimal
}

// Participants conjunto ordenado de socios.
type Participants []Participant

// DefaultParticipants los dos socios fundadores con pesos iguales.
func DefaultParticipants() Participants {
	return Participants{
		{Owner: entity.OwnerYassir, Weight: decimal.NewFromInt(1)},
		{Owner: entity.OwnerBasim, Weight: decimal.NewFromInt(1)},
	}
}

// ParseParticipants lee "yassir:1,basim:1". Un socio sin peso explícito pesa 1.
func ParseParticipants(s string) (Participants, error) {
	var out Participants
	seen := make(map[entity.Owner]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, weight, hasWeight := strings.Cut(part, ":")
		owner := entity.Owner(strings.TrimSpace(name))
		if owner == "" || owner == entity.OwnerShared {
			return nil, fmt.Errorf("socio inválido: %q", part)
		}
		if seen[owner] {
			return nil, fmt.Errorf("socio duplicado: %q", owner)
		}
		w := decimal.NewFromInt(1)
		if hasWeight {
			var err error
			w, err = decimal.NewFromString(strings.TrimSpace(weight))
			if err != nil || !w.IsPositive() {
				return nil, fmt.Errorf("peso inválido para %q: %q", owner, weight)
			}
		}
		seen[owner] = true
		out = append(out, Participant{Owner: owner, Weight: w})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no hay socios configurados")
	}
	return out, nil
}

// Owners nombres de los socios en orden.
func (p Participants) Owners() []entity.Owner {
	out := make([]entity.Owner, len(p))
	for i, x := range p {
		out[i] = x.Owner
	}
	return out
}

// SplitExpense reparte un gasto entre socios. Un gasto propio va completo a su dueño;
// uno compartido usa los porcentajes explícitos del gasto o, si no hay, los pesos.
// El último socio absorbe el residuo de la división para que la suma sea exacta.
func (p Participants) SplitExpense(e entity.Expense) map[entity.Owner]decimal.Decimal {
	out := make(map[entity.Owner]decimal.Decimal)
	if e.Owner != entity.OwnerShared {
		out[e.Owner] = e.Amount
		return out
	}
	if len(e.Splits) > 0 {
		for owner, pct := range e.Splits {
			out[owner] = e.Amount.Mul(pct).Div(hundred)
		}
		return out
	}
	if len(p) == 0 {
		return out
	}
	totalWeight := decimal.Zero
	for _, x := range p {
		totalWeight = totalWeight.Add(x.Weight)
	}
	assigned := decimal.Zero
	for i, x := range p {
		if i == len(p)-1 {
			out[x.Owner] = e.Amount.Sub(assigned)
			break
		}
		part := e.Amount.Mul(x.Weight).Div(totalWeight)
		out[x.Owner] = part
		assigned = assigned.Add(part)
	}
	return out
}
