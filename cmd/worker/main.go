package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ayabook/bookshop/internal/infrastructure/config"
	inframq "github.com/ayabook/bookshop/internal/infrastructure/mq"
	"github.com/ayabook/bookshop/pkg/mq"
)

// 订单事件通知Worker
// 订阅order.*事件,模拟向客服/运营侧推送通知。
// 独立进程部署,API服务挂掉不影响已入队消息的消费。
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if !cfg.MQ.Enabled {
		log.Fatal("MQ未启用,通知Worker无事可做(设置BOOKSHOP_MQ_ENABLED=true)")
	}

	consumer, err := mq.NewConsumer(
		cfg.MQ.URL,
		cfg.MQ.Exchange,
		"topic",
		"order.notification",
		[]string{"order.*"},
	)
	if err != nil {
		log.Fatalf("创建消费者失败: %v", err)
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("收到退出信号,停止消费")
		cancel()
	}()

	log.Println("✓ 订单通知Worker已启动")

	err = consumer.Consume(ctx, func(body []byte) error {
		var event inframq.OrderEvent
		if err := json.Unmarshal(body, &event); err != nil {
			// 格式非法的消息重试也没用,记日志后ACK丢弃
			log.Printf("事件格式非法,丢弃: %s", body)
			return nil
		}

		switch event.Status {
		case "pending":
			log.Printf("[通知] 新订单 %s: %d件商品, 合计%d", event.OrderNo, event.ItemCount, event.Total)
		case "cancelled":
			log.Printf("[通知] 订单取消 %s: 库存已回滚", event.OrderNo)
		default:
			log.Printf("[通知] 订单 %s 状态: %s", event.OrderNo, event.Status)
		}
		return nil
	})
	if err != nil && err != context.Canceled {
		log.Fatalf("消费循环退出: %v", err)
	}
}
