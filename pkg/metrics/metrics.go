// Package metrics 提供基于Prometheus的指标收集
//
// 指标分两类：
// 1. HTTP指标：请求总数、耗时分布、在途请求数（由metrics中间件记录）
// 2. 借阅业务指标：借出/归还总数、借出失败总数、当前未归还数
//
// 使用方式：
//
//	metrics.InitMetrics()
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（/api/v1/borrowings）、status（200/400）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 借阅业务指标

	// BorrowingsOpenedTotal 借出成功总数（Counter）
	BorrowingsOpenedTotal prometheus.Counter

	// BorrowingsRejectedTotal 借出被拒绝总数（Counter）
	// 标签：reason（out_of_stock/invalid_date_range）
	BorrowingsRejectedTotal *prometheus.CounterVec

	// BorrowingsReturnedTotal 归还成功总数（Counter）
	BorrowingsReturnedTotal prometheus.Counter

	// BorrowingsActive 当前未归还的借阅数（Gauge）
	BorrowingsActive prometheus.Gauge
)

// InitMetrics 初始化所有Prometheus指标
// 必须在程序启动时调用一次，指标通过promauto注册到默认Registry
func InitMetrics() {
	// 防止重复初始化
	if initialized {
		return
	}
	initialized = true

	// HTTP请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// 借阅业务指标
	BorrowingsOpenedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "borrowings_opened_total",
			Help: "借出成功总数",
		},
	)

	BorrowingsRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "borrowings_rejected_total",
			Help: "借出被拒绝总数",
		},
		[]string{"reason"},
	)

	BorrowingsReturnedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "borrowings_returned_total",
			Help: "归还成功总数",
		},
	)

	BorrowingsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "borrowings_active",
			Help: "当前未归还的借阅数",
		},
	)
}

// =========================================
// 业务指标便捷函数
// 未调用InitMetrics时(单元测试环境)静默跳过
// =========================================

// IncBorrowingOpened 记录一次成功借出
func IncBorrowingOpened() {
	if !initialized {
		return
	}
	BorrowingsOpenedTotal.Inc()
	BorrowingsActive.Inc()
}

// IncBorrowingRejected 记录一次被拒绝的借出
// reason: out_of_stock | invalid_date_range
func IncBorrowingRejected(reason string) {
	if !initialized {
		return
	}
	BorrowingsRejectedTotal.WithLabelValues(reason).Inc()
}

// IncBorrowingReturned 记录一次成功归还
func IncBorrowingReturned() {
	if !initialized {
		return
	}
	BorrowingsReturnedTotal.Inc()
	BorrowingsActive.Dec()
}

// SetBorrowingsActive 校准未归还借阅数(启动时从数据库回填)
func SetBorrowingsActive(n int64) {
	if !initialized {
		return
	}
	BorrowingsActive.Set(float64(n))
}
