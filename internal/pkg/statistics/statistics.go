package statistics

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/khoadanwneee/AuctionFox/app/models"
	"github.com/khoadanwneee/AuctionFox/internal/pkg/cache"
	"github.com/khoadanwneee/AuctionFox/internal/pkg/database"
)

const (
	CacheKeyAuctionsActive = "statistics:auctions:active"
	CacheKeyBidsDaily      = "statistics:bids:daily:%s" // Format with date YYYY-MM-DD
	CacheKeyUsers          = "statistics:users:total"
	CacheExpiration        = 30 * time.Minute
)

// StatisticsData holds the marketplace numbers shown on the start page
type StatisticsData struct {
	ActiveAuctions int
	TodayBids      int
	TotalUsers     int
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache checks whether the cached numbers are due for a refresh
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cache when the interval has elapsed
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("Error updating statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// ResetCacheUpdateTimer forces the next UpdateCacheIfNeeded to refresh
func ResetCacheUpdateTimer() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	lastCacheUpdate = time.Time{}
}

// UpdateStatisticsCache updates all statistics in the cache
func UpdateStatisticsCache() error {
	db := database.GetDB()

	// Count auctions that are still running
	var activeAuctions int64
	if err := db.Model(&models.Product{}).
		Where("end_at > ? AND closed_at IS NULL AND is_sold IS NULL", time.Now()).
		Count(&activeAuctions).Error; err != nil {
		log.Printf("Error counting active auctions: %v", err)
		return err
	}

	// Count today's bids
	var todayBids int64
	today := time.Now().Format("2006-01-02")
	todayStart, _ := time.Parse("2006-01-02", today)
	todayEnd := todayStart.Add(24 * time.Hour)

	if err := db.Model(&models.BiddingHistory{}).
		Where("created_at BETWEEN ? AND ?", todayStart, todayEnd).
		Count(&todayBids).Error; err != nil {
		log.Printf("Error counting today's bids: %v", err)
		return err
	}

	// Count total users
	var totalUsers int64
	if err := db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		log.Printf("Error counting total users: %v", err)
		return err
	}

	// Store values in cache
	if err := cache.Set(CacheKeyAuctionsActive, strconv.FormatInt(activeAuctions, 10), CacheExpiration); err != nil {
		log.Printf("Error caching active auctions: %v", err)
		return err
	}

	dailyKey := fmt.Sprintf(CacheKeyBidsDaily, today)
	if err := cache.Set(dailyKey, strconv.FormatInt(todayBids, 10), CacheExpiration); err != nil {
		log.Printf("Error caching today's bids: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyUsers, strconv.FormatInt(totalUsers, 10), CacheExpiration); err != nil {
		log.Printf("Error caching total users: %v", err)
		return err
	}

	log.Printf("Statistics updated in cache: Active Auctions: %d, Today's Bids: %d, Total Users: %d",
		activeAuctions, todayBids, totalUsers)

	return nil
}

// GetActiveAuctions returns the number of running auctions from cache or database
func GetActiveAuctions() int {
	val, err := cache.Get(CacheKeyAuctionsActive)
	if err != nil {
		var count int64
		db := database.GetDB()
		if err := db.Model(&models.Product{}).
			Where("end_at > ? AND closed_at IS NULL AND is_sold IS NULL", time.Now()).
			Count(&count).Error; err != nil {
			log.Printf("Error counting active auctions: %v", err)
			return 0
		}

		if err := cache.Set(CacheKeyAuctionsActive, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching active auctions: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return int(count)
}

// GetTodayBids returns the number of bids placed today from cache or database
func GetTodayBids() int {
	today := time.Now().Format("2006-01-02")
	dailyKey := fmt.Sprintf(CacheKeyBidsDaily, today)

	val, err := cache.Get(dailyKey)
	if err != nil {
		var count int64
		db := database.GetDB()
		todayStart, _ := time.Parse("2006-01-02", today)
		todayEnd := todayStart.Add(24 * time.Hour)

		if err := db.Model(&models.BiddingHistory{}).
			Where("created_at BETWEEN ? AND ?", todayStart, todayEnd).
			Count(&count).Error; err != nil {
			log.Printf("Error counting today's bids: %v", err)
			return 0
		}

		if err := cache.Set(dailyKey, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching today's bids: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return int(count)
}

// GetTotalUsers returns the total number of users from cache or database
func GetTotalUsers() int {
	val, err := cache.Get(CacheKeyUsers)
	if err != nil {
		var count int64
		db := database.GetDB()
		if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
			log.Printf("Error counting total users: %v", err)
			return 0
		}

		if err := cache.Set(CacheKeyUsers, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching total users: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return int(count)
}

// GetStatisticsData returns all statistics as one structure
func GetStatisticsData() StatisticsData {
	UpdateCacheIfNeeded()

	return StatisticsData{
		ActiveAuctions: GetActiveAuctions(),
		TodayBids:      GetTodayBids(),
		TotalUsers:     GetTotalUsers(),
	}
}
