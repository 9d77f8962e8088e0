package articlesync

// ExampleFileName is the article written into a freshly created source directory.
const ExampleFileName = "example.md"

const exampleArticle = "---\n" +
	"title: \"欢迎使用MD转文章工具\"\n" +
	"category: \"前端开发\"\n" +
	"section: \"技术文章\"\n" +
	"author: \"Kingishu\"\n" +
	"description: \"这是一个强大的自动化工具，可以将Markdown文档转换为你的网站文章，支持自动生成HTML、更新数据库和清理无效文章。\"\n" +
	"---\n" +
	"\n" +
	"# 欢迎使用MD转文章工具\n" +
	"\n" +
	"这是一个强大的自动化工具，可以将Markdown文档转换为你的网站文章。\n" +
	"\n" +
	"## 功能特点\n" +
	"\n" +
	"- 自动解析MD文档元数据\n" +
	"- 生成标准化的HTML文章\n" +
	"- 自动更新文章目录和数据\n" +
	"- 支持代码高亮和目录导航\n" +
	"- 自动更新已修改的文章\n" +
	"- 自动清理已删除的文章\n" +
	"\n" +
	"## 使用方法\n" +
	"\n" +
	"1. 将MD文件放入 `md-articles` 目录\n" +
	"2. 运行此工具\n" +
	"3. 文章将自动生成并添加到网站\n" +
	"\n" +
	"## 代码示例\n" +
	"\n" +
	"```javascript\n" +
	"function hello() {\n" +
	"    console.log(\"Hello, World!\");\n" +
	"}\n" +
	"```\n" +
	"\n" +
	"> 这是一个引用示例\n" +
	"\n" +
	"祝你使用愉快！\n"
