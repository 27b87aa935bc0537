package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLRU_AddExisting_UpdatesValueAndMovesToFront(t *testing.T) {
	//Arrange
	lru := NewLRU(3)
	lru.Add("someKey1", 8)
	lru.Add("someKey2", "56")
	lru.Add("someKey3", map[string]int{})

	//Act
	lru.Add("someKey1", 10)

	//Assert
	front := lru.queue.Front().Value.(*entry)
	back := lru.queue.Back().Value.(*entry)
	assert.Equal(t, "someKey1", front.key)
	assert.Equal(t, 10, front.value)
	assert.Equal(t, "someKey2", back.key)
	assert.Equal(t, 3, lru.Len())
}

func TestLRU_AddOverCapacity_EvictsOldest(t *testing.T) {
	//Arrange
	lru := NewLRU(2)
	lru.Add("someKey1", 1)
	lru.Add("someKey2", 2)

	//Act
	lru.Add("someKey3", 3)

	//Assert
	assert.Nil(t, lru.Get("someKey1"))
	assert.Equal(t, 2, lru.Get("someKey2"))
	assert.Equal(t, 3, lru.Get("someKey3"))
	assert.Equal(t, 2, lru.Len())
}

func TestLRU_Get_MissingKeyReturnsNil(t *testing.T) {
	lru := NewLRU(2)

	assert.Nil(t, lru.Get("missing"))
}

func TestLRU_Remove_InvalidatesEntry(t *testing.T) {
	//Arrange
	lru := NewLRU(3)
	lru.Add("someKey1", "report")
	lru.Add("someKey2", "digest")

	//Act
	lru.Remove("someKey1")
	lru.Remove("missing") // удаление отсутствующего ключа не должно паниковать

	//Assert
	assert.Nil(t, lru.Get("someKey1"))
	assert.Equal(t, "digest", lru.Get("someKey2"))
	assert.Equal(t, 1, lru.Len())
}

func TestLRU_ConcurrentAccess(t *testing.T) {
	lru := NewLRU(10)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				lru.Add("key", j)
				_ = lru.Get("key")
				lru.Remove("key")
			}
		}()
	}
	wg.Wait()
}
