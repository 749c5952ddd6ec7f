package kafka

import (
	"log"

	"github.com/IBM/sarama"
)

// Producer 异步生产者封装，按消息key哈希分区保证同一对象的事件有序
type Producer struct {
	asyncProducer sarama.AsyncProducer
	done          chan struct{}
}

// InitProducer 初始化生产者
func InitProducer(brokers []string) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = false
	config.Producer.Return.Errors = true
	config.Producer.Partitioner = sarama.NewHashPartitioner

	asyncProducer, err := sarama.NewAsyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}

	p := &Producer{
		asyncProducer: asyncProducer,
		done:          make(chan struct{}),
	}

	// 异步发送失败只能事后感知，持续排空错误通道避免阻塞
	go func() {
		defer close(p.done)
		for err := range asyncProducer.Errors() {
			log.Printf("kafka produce failed: topic=%s err=%v", err.Msg.Topic, err.Err)
		}
	}()

	return p, nil
}

// SendMessage 发送消息，key决定分区
func (p *Producer) SendMessage(topic string, key, value []byte) error {
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.ByteEncoder(key),
		Value: sarama.ByteEncoder(value),
	}
	p.asyncProducer.Input() <- msg
	return nil
}

// Close 关闭生产者，等待在途消息落地
func (p *Producer) Close() error {
	err := p.asyncProducer.Close()
	<-p.done
	return err
}
