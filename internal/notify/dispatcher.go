package notify

import "github.com/sirupsen/logrus"

// Dispatcher é a fila pós-commit de notificações: os use cases só
// enfileiram depois que a transação retornou, e falha de envio nunca
// volta para o fluxo que disparou.
type Dispatcher struct {
	mailer Mailer
	queue  chan Message
}

func NewDispatcher(mailer Mailer) *Dispatcher {
	d := &Dispatcher{
		mailer: mailer,
		queue:  make(chan Message, 100), // buffer seguro
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for m := range d.queue {
		if err := d.mailer.Send(m); err != nil {
			logrus.WithError(err).Warn("mail delivery failed")
		}
	}
}

func (d *Dispatcher) Dispatch(m Message) {
	select {
	case d.queue <- m:
		// enviado
	default:
		// fila cheia → descartamos a notificação (nunca quebrar API)
		logrus.Warn("mail queue full, dropping message")
	}
}
