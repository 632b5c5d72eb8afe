// Package password encapsula el hashing de contraseñas.
//
// El hash se aplica en el write boundary del repositorio de usuarios: ningún
// password llega en claro a la base. bcrypt embebe el salt por registro en el
// propio hash, así que la comparación nunca decodifica el valor guardado.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost por defecto de bcrypt. Subirlo invalida benchmarks, no hashes viejos.
const Cost = bcrypt.DefaultCost

// Hash devuelve el hash bcrypt (con salt embebido) del password en claro.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", fmt.Errorf("empty password")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compara un password en claro contra un hash almacenado.
// La comparación interna de bcrypt es de tiempo constante.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
