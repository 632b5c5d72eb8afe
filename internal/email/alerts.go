package email

import (
	"fmt"
	"time"

	"github.com/praphull/authd/internal/observability/logger"
)

// Alerter notifica eventos de seguridad por correo. Si está
// deshabilitado, los métodos son no-op.
type Alerter struct {
	sender  Sender
	to      string
	appName string
	enabled bool
}

// NewAlerter arma el alertador. Con enabled=false nunca envía.
func NewAlerter(sender Sender, to, appName string, enabled bool) *Alerter {
	return &Alerter{sender: sender, to: to, appName: appName, enabled: enabled}
}

// TestKeyMisuse avisa que la clave de prueba se usó para un cliente
// que no es mocha. El envío corre en goroutine: no debe demorar ni
// condicionar la respuesta HTTP.
func (a *Alerter) TestKeyMisuse(client, remoteAddr string) {
	if a == nil || !a.enabled || a.sender == nil {
		return
	}
	subject := fmt.Sprintf("[%s] uso indebido de clave de prueba", a.appName)
	text := fmt.Sprintf(
		"Se intentó emitir un token con la clave de prueba para el cliente %q desde %s a las %s.",
		client, remoteAddr, time.Now().UTC().Format(time.RFC3339),
	)
	html := fmt.Sprintf(
		"<p>Se intentó emitir un token con la clave de prueba para el cliente <b>%s</b> desde %s.</p><p>%s</p>",
		client, remoteAddr, time.Now().UTC().Format(time.RFC3339),
	)

	go func() {
		if err := a.sender.Send(a.to, subject, html, text); err != nil {
			logger.L().Warn("no se pudo enviar la alerta de seguridad",
				logger.Component("Alerter"), logger.Err(err))
		}
	}()
}
