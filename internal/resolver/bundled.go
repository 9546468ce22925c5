// # internal/resolver/bundled.go
package resolver

// bundledPackages is the built-in frozen set of popular distributions
// shipped for offline resolution. Names here are already lowercase and
// hyphen-normalized.
var bundledPackages = map[string]bool{
	// Data science / ML
	"numpy": true, "pandas": true, "scipy": true, "matplotlib": true, "seaborn": true,
	"scikit-learn": true, "tensorflow": true, "torch": true, "keras": true, "plotly": true,
	"bokeh": true, "altair": true, "streamlit": true, "jupyter": true, "notebook": true,
	"ipython": true, "statsmodels": true, "sympy": true, "networkx": true,

	// Web frameworks
	"django": true, "flask": true, "fastapi": true, "starlette": true, "sanic": true,
	"tornado": true, "aiohttp": true, "pyramid": true, "bottle": true, "cherrypy": true,
	"falcon": true, "quart": true, "litestar": true,

	// Validation & serialization
	"pydantic": true, "marshmallow": true, "cerberus": true, "jsonschema": true,
	"msgspec": true, "orjson": true, "ujson": true,

	// Database / ORM
	"sqlalchemy": true, "tortoise-orm": true, "peewee": true, "pony": true,
	"sqlmodel": true, "piccolo": true, "alembic": true, "psycopg2": true,
	"psycopg2-binary": true, "asyncpg": true, "pymysql": true, "mysqlclient": true,
	"aiomysql": true, "cx-oracle": true, "redis": true, "aioredis": true, "pymongo": true,
	"motor": true, "cassandra-driver": true, "elasticsearch": true, "influxdb": true,
	"clickhouse-driver": true,

	// Networking / HTTP
	"requests": true, "httpx": true, "urllib3": true, "grequests": true,
	"uplink": true, "httpcore": true,

	// Utils / CLI
	"click": true, "typer": true, "rich": true, "tqdm": true, "colorama": true,
	"fire": true, "docopt": true, "python-dotenv": true, "dynaconf": true,
	"loguru": true, "structlog": true,

	// Testing
	"pytest": true, "nose2": true, "tox": true, "nox": true, "coverage": true,
	"hypothesis": true, "faker": true, "factory-boy": true, "pytest-cov": true,
	"pytest-asyncio": true, "pytest-mock": true, "pytest-xdist": true,

	// Linting / formatting
	"black": true, "ruff": true, "isort": true, "mypy": true, "flake8": true,
	"pylint": true, "autopep8": true, "yapf": true,

	// Async
	"trio": true, "curio": true, "anyio": true, "greenlet": true, "gevent": true,
	"uvloop": true,

	// Security / auth
	"passlib": true, "bcrypt": true, "argon2-cffi": true, "pyjwt": true,
	"python-jose": true, "authlib": true, "oauthlib": true, "cryptography": true,
	"pyopenssl": true,

	// Cloud / AWS
	"boto3": true, "botocore": true, "s3fs": true, "gcsfs": true,
	"azure-storage-blob": true, "google-cloud-storage": true,

	// Image / vision
	"pillow": true, "opencv-python": true, "scikit-image": true, "moviepy": true,
	"imageio": true,

	// Report / PDF / Excel
	"reportlab": true, "pdfminer": true, "pypdf2": true, "pdfplumber": true,
	"weasyprint": true, "openpyxl": true, "xlrd": true, "xlsxwriter": true,
	"pandas-profiling": true,

	// DevOps / infrastructure
	"docker": true, "kubernetes": true, "ansible": true, "fabric": true,
	"invoke": true, "pulumi": true,

	// Queues
	"celery": true, "dramatiq": true, "rq": true, "huey": true,

	// Misc
	"pyyaml": true, "toml": true, "tomli": true, "xmltodict": true,
	"beautifulsoup4": true, "lxml": true, "parsel": true, "phonenumbers": true,
	"pycountry": true, "pytz": true, "pendulum": true, "arrow": true,
	"dateparser": true, "humanize": true, "bleach": true, "markdown": true,

	// Stdlib-like backports
	"typing-extensions": true, "dataclasses": true, "contextvars": true,
	"mock": true, "pathlib2": true,

	// Framework extras / servers
	"email-validator": true, "python-multipart": true, "gunicorn": true,
	"uvicorn": true, "python-barcode": true, "qrcode": true, "hypercorn": true,
	"daphne": true, "django-redis": true, "uwsgi": true,

	// Template / config
	"jinja2": true, "mako": true, "cookiecutter": true, "pyaml": true,

	// gRPC / protobuf / messaging
	"grpcio": true, "protobuf": true, "pika": true, "confluent-kafka": true,
	"kombu": true, "nats-py": true,

	// Data formats
	"pyarrow": true, "fastparquet": true, "h5py": true, "tables": true,
	"openpyxl3": true, "xlwt": true,

	// Misc scientific
	"numba": true, "dask": true, "joblib": true, "cython": true, "pybind11": true,

	// Infra-as-code / stdlib-adjacent backports
	"terraform": true, "enum34": true,

	// Flask/Werkzeug ecosystem
	"werkzeug": true, "itsdangerous": true, "blinker": true,

	// Misc utility
	"attrs": true, "cachetools": true, "more-itertools": true, "tenacity": true,
	"websockets": true,
}
