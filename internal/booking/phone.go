package booking

import "strings"

// ARCountryCode requiere el 9 de móvil para enrutar mensajes de WhatsApp.
const ARCountryCode = "+54"

// ComposePhone arma el número internacional a partir del código de país y el
// número local. El local se limpia de espacios y de un "+" inicial.
//
// Para Argentina (+54) se inserta el dígito 9 entre el código y el número:
// "+54" + "3511234567" → "+5493511234567". No es cosmético: sin el 9 el
// número resultante es válido pero de línea fija, y los mensajes de
// confirmación no llegan.
func ComposePhone(countryCode, local string) string {
	clean := strings.TrimPrefix(local, "+")
	clean = strings.Join(strings.Fields(clean), "")

	if countryCode == ARCountryCode {
		return ARCountryCode + "9" + clean
	}
	return countryCode + clean
}
