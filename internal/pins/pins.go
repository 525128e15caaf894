package pins

import (
	"math/rand/v2"
)

// Pins identify live games in join URLs. Short and lowercase so a coach can
// read one out over the phone.
const GamePinLength = 6

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyz1234567890")

func GeneratePin(l int) string {
	b := make([]rune, l)
	for i := range b {
		b[i] = letterRunes[rand.IntN(len(letterRunes))]
	}
	return string(b)
}
