package domain

import "maps"

// currencyNames is the bank's own naming of the currencies it has always published.
var currencyNames = map[string]string{
	"USD": "ABD DOLARI",
	"AUD": "AVUSTRALYA DOLARI",
	"DKK": "DANİMARKA KRONU",
	"EUR": "EURO",
	"GBP": "İNGİLİZ STERLİNİ",
	"CHF": "İSVİÇRE FRANGI",
	"SEK": "İSVEÇ KRONU",
	"CAD": "KANADA DOLARI",
	"KWD": "KUVEYT DİNARI",
	"NOK": "NORVEÇ KRONU",
	"SAR": "SUUDİ ARABİSTAN RİYALİ",
	"JPY": "JAPON YENİ",
	"BGN": "BULGAR LEVASI",
	"RON": "RUMEN LEYİ",
	"RUB": "RUS RUBLESİ",
	"IRR": "İRAN RİYALİ",
	"CNY": "ÇİN YUANI",
	"PKR": "PAKİSTAN RUPİSİ",
}

// CurrencyNames returns a copy of the static code to display name table.
func CurrencyNames() map[string]string {
	return maps.Clone(currencyNames)
}
