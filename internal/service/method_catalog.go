// internal/service/method_catalog.go
package service

import "wallet-ledger/internal/domain"

type catalogEntry struct {
	name, country, icon, flag, account string
}

// withdrawalCatalog is the fixed list of withdrawal channels installed by Seed.
var withdrawalCatalog = []catalogEntry{
	{"MTN Benin", "Benin", "/icons/mtn.png", "/flags/benin.png", "+2290123456789"},
	{"Moov Benin", "Benin", "/icons/moov.png", "/flags/benin.png", "+2290987654321"},

	{"MTN Togo", "Togo", "/icons/mtn.png", "/flags/togo.png", "+2280123456789"},
	{"Moov Togo", "Togo", "/icons/moov.png", "/flags/togo.png", "+2280987654321"},

	{"MTN Côte d’Ivoire", "Côte d’Ivoire", "/icons/mtn.png", "/flags/coteivoir.png", "+2250123456789"},
	{"Moov Côte d’Ivoire", "Côte d’Ivoire", "/icons/moov.png", "/flags/coteivoir.png", "+2250987654321"},
	{"Orange Côte d’Ivoire", "Côte d’Ivoire", "/icons/orange.png", "/flags/coteivoir.png", "+2250112233445"},
	{"Wave Côte d’Ivoire", "Côte d’Ivoire", "/icons/wave.png", "/flags/coteivoir.png", "+2250998877665"},

	{"Orange Sénégal", "Sénégal", "/icons/orange.png", "/flags/senegal.png", "+2210123456789"},
	{"Wave Sénégal", "Sénégal", "/icons/wave.png", "/flags/senegal.png", "+2210987654321"},

	{"Orange Mali", "Mali", "/icons/orange.png", "/flags/mali.png", "+2230123456789"},
	{"Wave Mali", "Mali", "/icons/wave.png", "/flags/mali.png", "+2230987654321"},

	{"Moov Burkina Faso", "Burkina-Faso", "/icons/moov.png", "/flags/burkina.png", "+2260123456789"},
	{"Orange Burkina Faso", "Burkina-Faso", "/icons/orange.png", "/flags/burkina.png", "+2260987654321"},
	{"Wave Burkina Faso", "Burkina-Faso", "/icons/wave.png", "/flags/burkina.png", "+2260112233445"},

	{"MTN Cameroun", "Cameroun", "/icons/mtn.png", "/flags/cameroun.png", "+2370123456789"},
	{"Orange Cameroun", "Cameroun", "/icons/orange.png", "/flags/cameroun.png", "+2370987654321"},

	// crypto
	{"USDT (TRC20)", "Global", "/icons/usdt.png", "/flags/crypto.png", "0x123abc456def789"},
	{"Toncoin", "Global", "/icons/toncoin.png", "/flags/crypto.png", "0x987xyz654wvu321"},
	{"Pi Network", "Global", "/icons/pi.png", "/flags/crypto.png", "pi_user_example"},
}

// WithdrawalCatalog returns fresh copies of the seeded withdrawal methods.
func WithdrawalCatalog() []domain.TransactionMethod {
	methods := make([]domain.TransactionMethod, 0, len(withdrawalCatalog))
	for _, e := range withdrawalCatalog {
		country, icon, flag, account := e.country, e.icon, e.flag, e.account
		methods = append(methods, domain.TransactionMethod{
			Name:          e.name,
			Type:          domain.MethodTypeWithdrawal,
			Country:       &country,
			IconURL:       &icon,
			FlagURL:       &flag,
			AccountNumber: &account,
		})
	}
	return methods
}
