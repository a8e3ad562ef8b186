package order

import (
	"context"
)

// Transactor 事务边界抽象
// mysql.TxManager实现此接口;用例层依赖接口,便于单元测试注入假事务
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
