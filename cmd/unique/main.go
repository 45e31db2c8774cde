// Command unique 在命令行输出互不重复的测试数据，供 shell 测试脚本使用。
//
//	$ unique email --prefix alice
//	alice-00000042@example.com
//	$ unique integer --base 1000 --count 3
//	1043
//	1044
//	1045
//
// 默认使用用户缓存目录下的计数文件，多次调用之间不会重复。
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
