package booking

// Total suma el servicio principal más los adicionales de cada sesión.
// Se recalcula siempre desde el catálogo: no hay total cacheado.
func Total(d Draft, cat Catalog) int {
	total := 0
	if svc, ok := cat.ByID(d.ServiceID); ok {
		total = svc.Price
	}
	for _, s := range d.Sessions {
		for _, id := range s.AddOnIDs {
			if add, ok := cat.ByID(id); ok {
				total += add.Price
			}
		}
	}
	return total
}

// PayNow es el monto a cobrar online. Con seña se cobra la mitad,
// redondeada hacia arriba en el medio (half-up): total 5001 → seña 2501.
func PayNow(total int, deposit bool) int {
	if !deposit {
		return total
	}
	return (total + 1) / 2
}

// CashDue es lo que queda a pagar en efectivo en la barbería.
func CashDue(total int, deposit bool) int {
	return total - PayNow(total, deposit)
}
