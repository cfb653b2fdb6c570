package schedule_sync_service

import (
	"context"
	"sync"
)

// BatchSize - количество одновременных запросов к бэкенду в одной волне.
// Ограничивает нагрузку на бэкенд при массовом удалении и создании слотов.
const BatchSize = 10

type batchItemResult[T any] struct {
	item T
	err  error
}

// runBatches выполняет операцию над элементами волнами по size запросов.
// Все запросы волны уходят параллельно, следующая волна не начинается, пока
// не получен исход каждого запроса текущей. Ошибка отдельного элемента не
// прерывает ни волну, ни весь проход: исходы собираются и возвращаются
// по одному на элемент, в исходном порядке.
func runBatches[T any](ctx context.Context, items []T, size int, operation func(context.Context, T) error) []batchItemResult[T] {
	results := make([]batchItemResult[T], len(items))

	for batchStart := 0; batchStart < len(items); batchStart += size {
		batchEnd := batchStart + size
		if batchEnd > len(items) {
			batchEnd = len(items)
		}

		var wg sync.WaitGroup
		for i := batchStart; i < batchEnd; i++ {
			wg.Add(1)
			go func(index int) {
				defer wg.Done()
				results[index] = batchItemResult[T]{
					item: items[index],
					err:  operation(ctx, items[index]),
				}
			}(i)
		}
		wg.Wait()
	}

	return results
}
