package memory

import "context"

// Storage 长期记忆存储接口
// 单个方法的写入是原子的，跨方法的组合操作由LongTermMemory按用户加锁
type Storage interface {
	// GetProfile 获取用户画像副本，不存在时返回nil
	GetProfile(ctx context.Context, userID string) (*UserProfile, error)

	// SaveProfile 保存用户画像
	SaveProfile(ctx context.Context, profile *UserProfile) error

	// AppendInteraction 追加交互记录，返回该用户追加后的记录总数
	AppendInteraction(ctx context.Context, interaction *Interaction) (int, error)

	// GetInteractions 获取用户最近的交互记录，按时间正序
	// limit: 限制返回数量，0表示不限制
	GetInteractions(ctx context.Context, userID string, limit int) ([]*Interaction, error)

	// SaveSummary 保存记忆摘要，覆盖旧值
	SaveSummary(ctx context.Context, summary *Summary) error

	// GetSummary 获取记忆摘要，不存在时返回nil
	GetSummary(ctx context.Context, userID string) (*Summary, error)

	// Close 关闭存储
	Close() error
}
