package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

type Producer struct {
	l             *slog.Logger
	w             *kafka.Writer
	paymentsTopic string
}

func NewProducer(l *slog.Logger, brokers []string, topic string) *Producer {
	l = l.WithGroup("kafka").With("topic", topic)

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "",
		Balancer:               &kafka.LeastBytes{},
		Async:                  true,
		Compression:            0,
		Logger:                 &infoLogger{l: l},
		ErrorLogger:            &errorLogger{l: l},
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		l:             l,
		w:             w,
		paymentsTopic: topic,
	}
}

type PaymentRecordedEvent struct {
	InvoiceID int64  `json:"invoiceId"`
	PaymentID int64  `json:"paymentId"`
	Amount    string `json:"amount"`
	Remaining string `json:"remaining"`
	Settled   bool   `json:"settled"`
	TxHash    string `json:"txHash"`
}

// SendPaymentRecorded is fire-and-forget: the payment is already committed,
// so a publish failure is logged and never surfaced to the caller.
func (p *Producer) SendPaymentRecorded(
	ctx context.Context,
	invoiceID, paymentID int64,
	amount, remaining decimal.Decimal,
	settled bool,
	txHash string,
) {
	event := PaymentRecordedEvent{
		InvoiceID: invoiceID,
		PaymentID: paymentID,
		Amount:    amount.String(),
		Remaining: remaining.String(),
		Settled:   settled,
		TxHash:    txHash,
	}

	b, err := json.Marshal(event)
	if err != nil {
		p.l.Error(fmt.Sprintf("marshal event: %s", err))
		return
	}

	err = p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(invoiceID, 10)),
		Value: b,
		Topic: p.paymentsTopic,
	})
	if err != nil {
		p.l.Error(fmt.Sprintf("write kafka message: %s", err))
		return
	}
}

func (p *Producer) Close() {
	err := p.w.Close()
	if err != nil {
		p.l.Error(fmt.Sprintf("close kafka writer: %s", err))
	}
}
