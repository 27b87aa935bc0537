// Package cache - LRU кэш для готовых ответов бота (сводки, балансы).
package cache

import (
	"container/list"
	"sync"
)

type entry struct {
	key   string
	value any
}

// LRU Кэш с вытеснением давно не использованных элементов.
// Безопасен для использования из нескольких горутин.
type LRU struct {
	mutex    sync.RWMutex
	capacity int
	queue    *list.List
	items    map[string]*list.Element
}

func NewLRU(capacity int) *LRU {
	return &LRU{
		capacity: capacity,
		queue:    list.New(),
		items:    make(map[string]*list.Element),
	}
}

// Add сохранить значение в кэш по заданному ключу.
func (c *LRU) Add(key string, value any) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if element, exists := c.items[key]; exists {
		c.queue.MoveToFront(element)
		element.Value.(*entry).value = value
		return
	}

	if c.queue.Len() == c.capacity {
		c.evictOldest()
	}

	c.items[key] = c.queue.PushFront(&entry{key: key, value: value})
}

// Get получить значение из кэша по заданному ключу (nil, если отсутствует).
// Полная блокировка: чтение передвигает элемент в начало очереди.
func (c *LRU) Get(key string) any {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	element, exists := c.items[key]
	if !exists {
		return nil
	}

	c.queue.MoveToFront(element)
	return element.Value.(*entry).value
}

// Remove удалить значение из кэша (инвалидация устаревшего ответа).
func (c *LRU) Remove(key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if element, found := c.items[key]; found {
		c.deleteElement(element)
	}
}

// Len текущее количество элементов в кэше.
func (c *LRU) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.items)
}

func (c *LRU) evictOldest() {
	if element := c.queue.Back(); element != nil {
		c.deleteElement(element)
	}
}

func (c *LRU) deleteElement(element *list.Element) {
	item := c.queue.Remove(element).(*entry)
	delete(c.items, item.key)
}
