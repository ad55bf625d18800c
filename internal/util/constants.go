package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// FallbackLang 请求的语言缺失时回退到中文
const FallbackLang = "zh"

// RequiredLangs 新增或修改题目时必须提供的语言
var RequiredLangs = []string{"zh", "en"}

const JSONContentType = "application/json"
