package amqp

import (
	"net"
	"net/url"
	"strconv"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Configuration struct {
	Host        string `json:"host"`
	Port        int    `json:"port"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	VirtualHost string `json:"virtualHost"`
	Exchange    string `json:"exchange"`
	Queue       string `json:"queue"`
}

func connectionUrl(settings Configuration) string {
	if settings.Username == "" {
		settings.Username = "guest"
	}
	if settings.Password == "" {
		settings.Password = "guest"
	}
	if settings.Host == "" {
		settings.Host = "localhost"
	}
	if settings.Port == 0 {
		settings.Port = 5672
	}
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(settings.Username, settings.Password),
		Host:   net.JoinHostPort(settings.Host, strconv.Itoa(settings.Port)),
		Path:   "/" + settings.VirtualHost,
	}
	return u.String()
}

func declareExchange(ch *amqp.Channel, name string) error {
	return ch.ExchangeDeclare(
		name,
		"fanout", // every bound queue gets every event
		true,     // durable
		false,    // auto-delete
		false,    // internal
		false,    // no-wait
		nil,
	)
}

func declareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	return ch.QueueDeclare(
		name,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
}

func bindQueue(ch *amqp.Channel, exchange, queue string) error {
	return ch.QueueBind(
		queue,
		"", // fanout ignores the routing key
		exchange,
		false,
		nil,
	)
}
